// Package hclgrid is the HCL front-end of the engine. It loads grid files
// declaring tasks, their dependency edges and per-run external arguments,
// and translates them into the engine's native workflow and argument types.
//
// A grid file looks like:
//
//	task "env_vars" "home" {
//	  variables = ["HOME"]
//	}
//
//	task "print" "greet" {
//	  depends_on = [task.home]
//	  prefix     = ">> "
//	}
//
//	run {
//	  args "greet" {
//	    message = "hello"
//	  }
//	}
//
// Task blocks carry static configuration as literal attributes; run blocks
// carry the dynamic arguments for one run. Everything is validated at load
// time, before any task executes.
package hclgrid
