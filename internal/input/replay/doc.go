// Package replay records raw input frame by frame and plays it back.
//
// A Recorder wraps a platform.Source. Every Poll is one frame; while
// recording, the samples of each frame are kept together with the frame's
// index. A Player is a platform.Source that returns the recorded samples of
// one frame per Poll, so stepping an input.Manager with a Player reproduces
// the original action states frame for frame.
//
// Recordings are stored as versioned JSON:
//
//	rec := replay.NewRecorder(src)
//	rec.Start()
//	... step the manager with rec ...
//	err := replay.Save(rec.Stop(), "session.json")
//
//	r, err := replay.Load("session.json")
//	manager.Step(replay.NewPlayer(r))
package replay
