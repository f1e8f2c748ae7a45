// This file defines the Draw method for the model.

package main

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
	"strings"

	"codeberg.org/anaseto/gruid"
	"codeberg.org/anaseto/gruid/ui"
)

// RenderOrder is a type representing the priority of an entity rendering.
type RenderOrder int

// Those constants represent distinct kinds of rendering priorities. In case
// two entities are at a given position, only the one with the highest priority
// gets displayed.
const (
	RONone RenderOrder = iota
	ROItem
	ROActor
)

// RenderOrder returns the rendering priority of an entity.
func (g *Game) RenderOrder(i ID) (ro RenderOrder) {
	e := g.Entity(i)
	if i == PlayerID {
		return ROActor
	}
	if a, ok := e.Role.(*Actor); ok && !a.KnownDead {
		return ROActor
	}
	if e.IsItem() && i >= FirstMapID {
		return ROItem
	}
	return RONone
}

// Draw implements Draw() for gruid.Model.
func (md *model) Draw() gruid.Grid {
	if !md.anims.Done() {
		return md.drawAnimationFrame()
	}
	md.gd.Fill(gruid.Cell{Rune: ' '})
	switch md.mode {
	case modeQuitting:
		return md.gd.Slice(gruid.Range{})
	case modePager:
		if md.pager.mode == modeDump {
			md.gd.Copy(md.pager.pg.Draw())
			return md.gd
		}
	case modeNewGame:
		md.drawModSelection()
		return md.gd
	case modeLoadGame:
		md.drawLoadGameScreen()
		return md.gd
	}
	// Log drawing.
	md.log.Content = md.DrawLog()
	md.log.Draw(md.gd.Slice(md.gd.Range().Lines(0, 2)))
	// Map drawing.
	if md.g.win {
		md.drawWin(md.gd.Slice(md.gd.Range().Shift(0, 2, 0, -1)))
	} else {
		md.drawMap(md.gd.Slice(md.gd.Range().Shift(0, 2, 0, -1)))
	}
	// Some extra widgets may appear in some modes: they're drawn over log
	// lines and map.
	switch md.mode {
	case modeNormal:
		if md.status.focus {
			md.drawStatusDesc()
		} else if md.targ.p != InvalidPos {
			// Target description label drawing (over log lines and map).
			md.drawTargInfo()
		}
	case modePager:
		pgd := md.pager.pg.Draw()
		rg := md.pager.pg.View()
		sz := pgd.Size()
		if rg.Min.Y > 0 {
			pgd.Set(gruid.Point{X: sz.X - 1, Y: 1}, gruid.Cell{Rune: '↑'})
		}
		if rg.Max.Y < md.pager.pg.Lines() {
			pgd.Set(gruid.Point{X: sz.X - 1, Y: sz.Y - 2}, gruid.Cell{Rune: '↓'})
		}
		md.gd.Copy(pgd)
	case modeMenu:
		switch md.menu.mode {
		case modeInventory, modeDrop:
			md.drawInventory()
		case modeGameMenu, modeConfigMenu, modeHelpMenu:
			md.gd.Copy(md.menu.main.Draw())
			if md.desc.Content.Text() != "" {
				md.desc.Draw(md.gd.Slice(md.gd.Range().Columns(UIWidth/2, UIWidth)))
			}
		case modeKeysView, modeKeysChange:
			md.drawKeySettings()
		}
	}
	// We draw the status line last: it should always be visible and no
	// other widgets should ever need that space.
	md.gd.Slice(md.gd.Range().Line(UIHeight - 1)).Copy(md.status.menu.Draw())
	return md.gd
}

func (md *model) drawAnimationFrame() gruid.Grid {
	if !md.anims.draw {
		return md.gd.Slice(gruid.Range{})
	}
	gd := md.gd
	for _, fc := range md.anims.frames[0].Cells {
		gd.Set(fc.P, fc.Cell)
	}
	md.anims.frames = md.anims.frames[1:]
	return gd
}

func (md *model) drawWin(gd gruid.Grid) {
	gd.Fill(gruid.Cell{
		Rune:  '♦',
		Style: gruid.Style{Fg: ColorViolet, Bg: ColorBackground, Attrs: AttrInMap}})
	textgd := gd.Slice(gruid.NewRange(6, 7, 6+62, 7+5))
	textgd.Fill(gruid.Cell{Rune: ' '})
	stt := ui.StyledText{}.WithMarkups(Markups)
	stt.WithText(`You pried the Heartstone loose! ` +
		`The deep rock shudders and sings as you climb, its slow light ` +
		`showing you the long way back to the surface. `).
		Format(60).Draw(textgd.Slice(textgd.Range().Shift(1, 1, -1, -1)))
}

func (md *model) drawMap(gd gruid.Grid) {
	g := md.g
	// Terrain drawing.
	for p := range g.Map.KnownTerrain.Points() {
		g.drawTerrainRuneAt(gd, g.Map.RuneAt(p), p)
	}
	// Entity drawing (with rendering order).
	for _, i := range g.sortedIDsByRenderOrder() {
		if g.RenderOrder(i) == RONone {
			continue
		}
		e := md.g.Entity(i)
		p := e.KnownP
		if p == InvalidPos {
			continue
		}
		g.drawEntityAt(gd, e, p)
	}
	// Travel path highlighting.
	md.drawTravelPath(gd)
}

func (g *Game) sortedIDsByRenderOrder() []ID {
	sortedIDs := make([]ID, len(g.Entities))
	for i := range sortedIDs {
		sortedIDs[i] = ID(i)
	}
	slices.SortFunc(sortedIDs, func(i, j ID) int {
		return cmp.Compare(g.RenderOrder(i), g.RenderOrder(j))
	})
	return sortedIDs
}

func (g *Game) drawTerrainRuneAt(gd gruid.Grid, r rune, p gruid.Point) {
	c := gruid.Cell{Rune: r}
	if g.InFOV(p) {
		c.Style.Bg = ColorBackgroundSecondary
	} else {
		if c.Style.Fg == ColorForeground {
			c.Style.Fg = ColorForegroundSecondary
		}
	}
	c.Style.Attrs = AttrInMap
	if r == '#' || r == '+' {
		c.Style.Attrs |= AttrBold
	}
	gd.Set(p, c)
}

func (md *model) drawTravelPath(gd gruid.Grid) {
	if md.targ.p != InvalidPos {
		for _, p := range md.auto.path {
			c := gd.At(p)
			c.Style.Attrs |= AttrReverse
			gd.Set(p, c)
		}
	}
}

func (g *Game) drawEntityAt(gd gruid.Grid, e *Entity, p gruid.Point) {
	c := gd.At(p)
	c.Rune = e.Rune
	if !e.IsActor() || g.InFOV(p) {
		c.Style.Fg = e.Color()
	} else {
		c.Style.Fg = ColorForeground
	}
	gd.Set(p, c)
}

func (md *model) drawStatusDesc() {
	rg := md.status.menu.ActiveBounds()
	x := (rg.Min.X + rg.Max.X) / 2
	sz := md.status.desc.Content.Size()
	w, h := sz.X, sz.Y
	x -= w / 2
	if x+w > UIWidth {
		x = UIWidth - w
	}
	if x < 0 {
		x = 0
	}
	md.status.desc.Draw(md.gd.Slice(md.gd.Range().Lines(UIHeight-3-h, UIHeight-1).Shift(x, 0, 0, 0)))
}

// Markups contains the styling markup-characters we use for StyledText.
var Markups = map[rune]gruid.Style{
	'B': {Fg: ColorBlue},
	'C': {Fg: ColorCyan},
	'G': {Fg: ColorGreen},
	'M': {Fg: ColorMagenta},
	'O': {Fg: ColorOrange},
	'R': {Fg: ColorRed},
	'V': {Fg: ColorViolet},
	'Y': {Fg: ColorYellow},
	'b': {Fg: ColorBlue, Attrs: AttrInMap},
	'c': {Fg: ColorCyan, Attrs: AttrInMap},
	'g': {Fg: ColorGreen, Attrs: AttrInMap},
	'm': {Fg: ColorMagenta, Attrs: AttrInMap},
	'o': {Fg: ColorOrange, Attrs: AttrInMap},
	'r': {Fg: ColorRed, Attrs: AttrInMap},
	'v': {Fg: ColorViolet, Attrs: AttrInMap}, // unused
	'y': {Fg: ColorYellow, Attrs: AttrInMap},
}

func (md *model) drawTargInfo() {
	g := md.g
	p := gruid.Point{}
	if md.targ.p.X < MapWidth/2 {
		p.X += MapWidth/2 + 1
	}
	info := md.targ.info

	y := 2
	stt := ui.StyledText{}.WithMarkups(Markups)
	formatBox := func(title, s string, fg gruid.Color) {
		md.desc.Content = stt.WithText(s).Format(MapWidth/2 - 3)
		if md.desc.Content.Size().Y+y > MapHeight {
			md.desc.Box = &ui.Box{Title: stt.WithText(title).WithStyle(gruid.Style{Fg: fg}),
				Footer: ui.NewStyledText("scroll/page down for more…", gruid.Style{Fg: ColorMagenta})}
		} else {
			md.desc.Box = &ui.Box{Title: stt.WithText(title).WithStyle(gruid.Style{Fg: fg})}
		}
		y += md.desc.Draw(md.gd.Slice(gruid.NewRange(0, y, MapWidth/2-1, 2+MapHeight).Add(p))).Size().Y
	}

	features := []string{TerrainName(g.Map.KnownTerrain.At(md.targ.p))}
	if !info.sees && !info.unknown {
		features = append(features, "seen")
	} else if info.unknown {
		features = append(features, "unexplored")
	}
	t := features[0]
	if len(features) > 1 {
		t += " (" + strings.Join(features[1:], ", ") + ")"
	}
	var fg gruid.Color
	if !md.targ.scroll {
		formatBox(t, TerrainDesc(g.Map.KnownTerrain.At(md.targ.p)), fg)
	}
	for i, id := range info.entities {
		if md.targ.scroll && i < len(info.entities)-1 {
			continue
		}
		e := g.Entity(id)
		if e.KnownP == InvalidPos {
			continue
		}
		var sb strings.Builder
		name := e.Name
		cl := e.Color()
		switch r := e.Role.(type) {
		case *Actor:
			if info.sees {
				fmt.Fprintf(&sb, "HP:%s A:%d D:%d", r.fmtHP(), r.Attack, r.Defense)
				if s := r.MindStateString(); s != "" {
					name += fmt.Sprintf(" (%s)", s)
				}
			} else {
				cl = ColorForeground
				fmt.Fprintf(&sb, "HP:?/%d A:%d D:%d", r.MaxHP, r.Attack, r.Defense)
			}
			sb.WriteByte('\n')
			fmt.Fprintf(&sb, "@CTraits:@N %s.", r.Traits)
			if si := r.Kind.Data(); si != nil && si.Desc != "" {
				sb.WriteByte('\n')
				sb.WriteString(si.Desc)
			}
		case Item:
			sb.WriteString(r.Desc())
		}
		formatBox(name, sb.String(), cl)
	}
}

const modSelectionMargin = 5

func (md *model) drawModSelection() {
	menugd := md.menu.main.Draw()
	gdslice := md.gd.Slice(gruid.NewRange(0, modSelectionMargin, UIWidth, UIHeight))
	gdslice.Copy(menugd)
	md.desc.Draw(gdslice.Slice(gdslice.Range().Columns(UIWidth/2, UIWidth)))
	ui.Textf("Skarn %s", Version).WithStyle(gruid.Style{}.WithFg(ColorMagenta)).
		Draw(md.gd.Slice(gruid.NewRange(-8+UIWidth/2, 3, UIWidth, UIHeight)))
	ui.Text(`The mining town above grew rich on the veins below, until the galleries `+
		`woke and the miners fled. Twelve levels down, the Heartstone still pulses in `+
		`the deep rock. You go down to pry it loose… May luck be on your side!`).Format(72).
		Draw(md.gd.Slice(gruid.NewRange(4, 17, UIWidth-4, UIHeight)))
}

func (md *model) drawLoadGameScreen() {
	ui.Textf("Skarn %s", Version).WithStyle(gruid.Style{}.WithFg(ColorMagenta)).
		Draw(md.gd.Slice(gruid.NewRange(-8+UIWidth/2, 5, UIWidth, UIHeight)))
	ui.Text("—Press any key to load saved game—").
		Draw(md.gd.Slice(gruid.NewRange(-17+UIWidth/2, 19, UIWidth, UIHeight)))
	gd := md.gd.Slice(gruid.NewRange(-11+UIWidth/2, 7, UIWidth, UIHeight))
	drawGamePicture(gd)
}

func drawGamePicture(gd gruid.Grid) {
	markups := maps.Clone(Markups)
	for i, st := range markups {
		markups[i] = st.WithAttrs(AttrInMap)
	}
	st := gruid.Style{}.WithAttrs(AttrInMap)
	markups['w'] = st.WithFg(ColorForeground).WithBg(ColorBackgroundSecondary).WithAttrs(AttrBold | AttrInMap)
	markups['W'] = st.WithFg(ColorForegroundSecondary).WithBg(ColorBackground).WithAttrs(AttrBold | AttrInMap)
	markups['l'] = st.WithFg(ColorForeground).WithBg(ColorBackgroundSecondary)
	markups['y'] = st.WithFg(ColorYellow).WithBg(ColorBackgroundSecondary)
	markups['c'] = st.WithFg(ColorCyan).WithBg(ColorBackgroundSecondary)
	markups['b'] = st.WithFg(ColorBlue).WithBg(ColorBackgroundSecondary)
	markups['r'] = st.WithFg(ColorRed).WithBg(ColorBackgroundSecondary)
	markups['v'] = st.WithFg(ColorViolet).WithBg(ColorBackgroundSecondary)
	markups['d'] = st.WithFg(ColorForegroundSecondary).WithBg(ColorBackground)
	markups['t'] = gruid.Style{}.WithFg(ColorGreen)
	stt := ui.StyledText{}.WithMarkups(markups)
	text := `@t───────────────────────
@W####@d....@W##########@d...@W##
@W#@d..@W#####@d........@W##@d..@W#@d.@W#
@w#@l.@b@@@l....@w+@l....@rr@l....@l'@d..@W#@d.@c>
@w#@l...@y$@l..@w#######@l.@rs@l....@W###
@w##+#####@l.@w#@t SKARN @w#@l....@w#
@d.@w#@l....@y!@l.@w##########@l.@v♦@w#@d.@W#
@d.@W##@d...@W#@d.....z......@W#@d..@W#
@d..@W#####@d...@W#######@d..@W###@d.
@t───────────────────────
`
	stt.WithText(text).Draw(gd)
}

func (md *model) drawInventory() {
	menugd := md.menu.main.Draw()
	md.gd.Copy(menugd)
	md.desc.Draw(md.gd.Slice(md.gd.Range().Columns(UIWidth/2, UIWidth)))
}

func (md *model) drawKeySettings() {
	gd := md.menu.keys.Draw()
	max := gd.Size()
	t := ui.Text("(R) reset (Enter) change").WithStyle(gruid.Style{}.WithFg(ColorCyan))
	if md.menu.mode == modeKeysChange {
		t = t.WithText(" Press new key… ")
	}
	t.Draw(gd.Slice(gd.Range().Line(max.Y-1).Shift(2, 0, 0, 0)))
	md.gd.Copy(gd)
}
