// Package hexview renders a hex-grid battlefield for [Ebitengine] or any
// other target that implements [Surface].
//
// hexview owns presentation only. The game keeps its map, units, teams and
// time of day and exposes them through small read-only interfaces
// ([MapSource], [UnitSource], [TeamSource], [TimeOfDaySource], ...). The
// display redraws just the hexes that were invalidated since the last frame.
//
// # Quick start
//
//	cfg, err := hexview.LoadConfig("battlefield.yaml")
//	// ...
//	target := ebiten.NewImage(1024, 768)
//	surface := hexview.NewEbitenSurface(target)
//	d, err := hexview.NewDisplay(hexview.Options{
//		Config:  cfg,
//		Map:     board,
//		Units:   board,
//		Teams:   teams,
//		Images:  art,
//		Clock:   hexview.FrameClock{},
//		Surface: surface,
//	})
//	// ...
//	hexview.Run(hexview.NewGame(d, surface), hexview.RunConfig{Title: "Battle"})
//
// Headless callers draw into an [RGBASurface] and call [Display.DrawFrame]
// themselves.
//
// # Geometry
//
// Hexes use flat-topped offset coordinates: odd columns sit half a hex lower
// than even ones. At zoom z a hex is z pixels tall and its column advances
// 3z/4 pixels. [HexToPixel] and [PixelToHex] convert between the two and
// agree on every tile centre. Zoom is kept to multiples of [ZoomQuantum].
//
// # Invalidation
//
// Every change goes through a Display method, which marks the affected hexes
// dirty. [Display.DrawFrame] fixes the dirty set before drawing, so hexes
// marked while a frame is being drawn are redrawn in the next one.
//
// # Sequences
//
// Smooth scrolling and time-of-day fades are [FrameSequence] generators.
// [Display.ScrollToTile] and [Display.SetTimeOfDay] run them to completion;
// [Game.Start] steps them once per interval from the game loop.
//
// [Ebitengine]: https://ebitengine.org
package hexview
