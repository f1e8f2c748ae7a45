package main

import (
	"time"

	"codeberg.org/anaseto/gruid"
)

// These constants represent the animation frame durations in use.
const (
	AnimDurShort  = 40 * time.Millisecond
	AnimDurMedium = 80 * time.Millisecond
	AnimDurLong   = 150 * time.Millisecond
)

// Animations provides support for animations.
type Animations struct {
	frames []AnimFrame // frame queue
	grid   gruid.Grid  // drawing grid
	mgrid  gruid.Grid  // map grid (slice of grid)
	pgrid  gruid.Grid  // previous drawing grid
	idx    int         // animation sequence counter
	draw   bool        // whether to draw an animation frame or not
}

// AnimFrame represents an animation frame.
type AnimFrame struct {
	Cells    []gruid.FrameCell
	Duration time.Duration
}

// Finish clears the frame queue.
func (a *Animations) Finish() {
	a.idx++
	a.frames = nil
}

// Done reports whether there are no more animations in the queue.
func (a *Animations) Done() bool {
	return len(a.frames) == 0
}

// Draw sets a given rune and foreground color at a given position.
func (a *Animations) Draw(p gruid.Point, r rune, fg gruid.Color) {
	c := a.mgrid.At(p)
	c.Rune = r
	c.Style.Fg = fg
	a.mgrid.Set(p, c)
}

// DrawColor sets a given color at a given position.
func (a *Animations) DrawColor(p gruid.Point, fg gruid.Color) {
	c := a.mgrid.At(p)
	c.Style.Fg = fg
	a.mgrid.Set(p, c)
}

// Frame emits a new animation frame with given duration.
func (a *Animations) Frame(d time.Duration) {
	frame := AnimFrame{}
	frame.Duration = d
	it := a.grid.Iterator()
	itp := a.pgrid.Iterator()
	for it.Next() && itp.Next() {
		if it.Cell() == itp.Cell() {
			continue
		}
		frame.Cells = append(frame.Cells, gruid.FrameCell{P: it.P(), Cell: it.Cell()})
	}
	a.frames = append(a.frames, frame)
	a.pgrid.Copy(a.grid)
}

type msgAnim int

// InitAnimations initializes drawing grids for animations.
func (md *model) InitAnimations() {
	sz := md.gd.Size()
	md.anims.grid = gruid.NewGrid(sz.X, sz.Y)
	md.anims.mgrid = md.anims.grid.Slice(md.anims.grid.Range().Shift(0, 2, 0, -1))
	md.anims.pgrid = gruid.NewGrid(sz.X, sz.Y)
	md.anims.grid.Copy(md.gd)
	md.anims.pgrid.Copy(md.gd)
}

// AnimNext returns a ticker command appropriately timed for the next frame.
func (md *model) AnimNext() gruid.Cmd {
	d := md.anims.frames[0].Duration
	idx := md.anims.idx
	return func() gruid.Msg {
		t := time.NewTimer(d)
		<-t.C
		return msgAnim(idx)
	}
}

// AnimCmd returns a command with current animation sequence counter, which is
// used when updating to check whether the current animation is still relevant
// or not.
func (md *model) AnimCmd() gruid.Cmd {
	if len(md.anims.frames) == 0 {
		return nil
	}
	idx := md.anims.idx
	return func() gruid.Msg {
		return msgAnim(idx)
	}
}

// startAnimSeq is a helper function for starting a new animation sequence from
// a freshly drawn map representing the current state.
func (md *model) startAnimSeq() {
	if md.anims.Done() {
		// Compute new frame with respect to last drawn grid.
		md.anims.pgrid.Copy(md.gd)
	}
	agrid := md.anims.grid
	rg := agrid.Range()
	// Draw log.
	gdlog := agrid.Slice(rg.Lines(0, 2))
	gdlog.Fill(gruid.Cell{Rune: ' '})
	md.log.Content = md.DrawLog()
	md.log.Draw(gdlog)
	// Draw map.
	md.drawMap(md.anims.mgrid)
	// Draw status.
	md.updateStatus()
	gdstatus := agrid.Slice(rg.Line(UIHeight - 1))
	gdstatus.Fill(gruid.Cell{Rune: ' '})
	gdstatus.Copy(md.status.menu.Draw())
}

// DeathAnimation animates a monster's death at a given position.
func (md *model) DeathAnimation(p gruid.Point) {
	if DisableAnimations || !md.g.InFOV(p) {
		return
	}
	md.startAnimSeq()
	md.anims.Draw(p, '∞', ColorCyan)
	md.anims.Frame(AnimDurMedium)
}

// PlayerAnimation momentarily changes the player's color.
func (md *model) PlayerAnimation(c gruid.Color, d time.Duration) {
	if DisableAnimations {
		return
	}
	md.startAnimSeq()
	md.anims.DrawColor(md.g.PP(), c)
	md.anims.Frame(d)
}

// WoundedAnimation briefly alerts the player when they're hurt.
func (md *model) WoundedAnimation() {
	md.PlayerAnimation(ColorOrange, AnimDurMedium)
}

// HeartstoneAnimation animates the Heartstone coming loose.
func (md *model) HeartstoneAnimation() {
	if DisableAnimations {
		return
	}
	md.startAnimSeq()
	g := md.g
	c := gruid.Cell{
		Rune:  '♦',
		Style: gruid.Style{Fg: ColorViolet, Bg: ColorBackground, Attrs: AttrInMap}}
	for k := 0; k < 7; k++ {
		for p := range g.Map.Terrain.Points() {
			switch g.rand.IntN(4) {
			case 0:
				md.anims.mgrid.Set(p, c)
			case 1:
				if k >= 4 {
					md.anims.mgrid.Set(p, c)
				}
			}
		}
		md.anims.Frame(AnimDurLong)
	}
}
