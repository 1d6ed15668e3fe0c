// Package input binds raw device input to named actions.
//
// The Manager is the entry point. Platform back-ends feed it samples; it
// turns them into action state that game logic can poll and into events
// that subscribers receive in priority order.
//
// # Pipeline
//
// Each sample flows through the same stages:
//
//	platform.Sample
//	  -> synth.Synthesizer   thumbstick, wheel and pointer axes become
//	                         directional virtual keys (Change samples only)
//	  -> normalize           canonical Event; bound actions are pressed
//	  -> event.Bus           subscribers run by descending priority;
//	                         a sink may stop propagation
//
// # Frames
//
// Action state is frame based. Process every sample of a frame, read the
// state, then call Tick:
//
//	for range ticker.C {
//	    m.HandleSamples(src.Poll(nil))
//	    if m.IsJustPressed("jump") {
//	        player.Jump()
//	    }
//	    m.Tick()
//	}
//
// Step and Run wrap this loop. Keys that stay down and thumbsticks that
// stay deflected keep their actions pressed across frames; wheel ticks and
// pointer motion are one-frame impulses.
//
// # Configuration
//
//	m := input.NewManager(input.WithLogger(logger))
//	_ = m.AddAction("jump", 0.5, key.Physical(key.CodeSpace), key.Physical(key.CodeButtonA))
//	_ = m.BindKeyToAction("move-left", key.Thumbstick1Left)
//	_ = m.SetDeadzone(key.Physical(key.CodeThumbstick1), 0.15)
//
// The config package loads the same settings from TOML, YAML or JSON files.
//
// # Hooks
//
// Hooks see raw samples before the pipeline and every event after
// dispatch. A hook can drop samples, for example to ignore the gamepad
// while a text field has focus. Package script runs hooks written in Lua.
//
// Package replay records the samples a Source produces and plays them back
// frame by frame, which reproduces action state exactly.
package input
