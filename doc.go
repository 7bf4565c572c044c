// Package motion is the real-time motion engine behind a portfolio page:
// entrance reveals, a smoothed pointer follower, a drifting particle
// background and active-section tracking.
//
// Every component is driven by two injected capabilities. A [Ticker]
// schedules per-frame continuations the way a display's paint callback does;
// [FrameScheduler] is the deterministic implementation, advanced once per
// frame by the host (see the stage package for the Ebitengine host). A
// [VisibilityWatcher] reports element intersections with the viewport;
// [Viewport] computes them from layout geometry and [ManualWatcher] lets
// tests inject them.
//
// # Quick start
//
//	sched := motion.NewFrameScheduler()
//	view := motion.NewViewport(1280, 720)
//	view.SetLayout("about", motion.Rect{Y: 900, Width: 1280, Height: 600})
//
//	fade := motion.NewRevealController(motion.DefaultRevealConfig())
//	fade.Mount(view, sched, "about", motion.StyleFunc(func(s motion.Style) {
//		// move and fade the element
//	}))
//
//	// each frame:
//	view.Update(dt)
//	view.Flush()
//	sched.Advance(dt)
//
// # Lifecycle
//
// Components are created unmounted. Mount acquires observers and frame
// requests; Unmount releases all of them, after which no callback fires and
// no output is written. Hosts must call Unmount on every teardown path.
//
// # Theme
//
// [ThemeStore] holds the single light/dark flag. Drawing code receives a
// [ColorResolver] and reads it every frame, so a toggle shows on the next
// frame without any explicit invalidation.
package motion
