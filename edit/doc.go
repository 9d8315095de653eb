// SPDX-License-Identifier: EPL-2.0

/*
Package edit implements region-based editing of multichannel audio.

An Audio keeps its samples in a segment.List so cutting, inserting and
rewriting parts of a long recording only touches the chunks involved. Every
operation addresses its target through a Region, resolved to absolute sample
bounds by a Resolver:

	a, _ := edit.New(buf, edit.Options{})
	_ = a.Gain(-6, edit.Region{Start: edit.Seconds(1), Duration: edit.Seconds(2)})
	_ = a.Fade(edit.Region{Duration: edit.Seconds(-0.5)}, edit.FadeOptions{}) // fade out

Errors are ErrInvalidArgument or ErrOutOfRange, possibly wrapping the
buffer or segment error that caused them.
*/
package edit
