// Package script runs input hooks written in Lua.
//
// A script defines either or both of two global functions:
//
//	function pre_sample(s)
//	  if s.key == "CapsLock" then
//	    s.key = "Escape"      -- remap
//	  end
//	  return s.key == "F12"   -- true consumes the sample
//	end
//
//	function post_event(e)
//	  if e.handled then log("handled " .. e.key) end
//	end
//
// pre_sample receives a table with key, kind, state, strength, mods and the
// position and delta components x, y, z, dx, dy, dz. Changes to key and
// strength are written back to the sample. post_event receives key, kind,
// strength, changed, handled and an actions array.
//
// Scripts run in a sandbox with only the base, table, string and math
// libraries, and each call is bounded by a timeout. Script errors are
// logged and leave the sample untouched.
package script
