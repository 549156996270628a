// Package transcript turns the plain "(mm:ss)" and "(h:mm:ss)" markers of a
// pasted video transcript into links that open the video at that moment.
//
// The video is identified by the single watch URL found in the text, or in a
// separate source text such as the note the transcript is pasted into.
package transcript
