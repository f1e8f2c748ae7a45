package main

import (
	"fmt"

	"codeberg.org/anaseto/gruid"
	"codeberg.org/anaseto/gruid/ui"
)

// gameStatus represents the game's status bar and relevant data.
type gameStatus struct {
	menu  *ui.Menu
	desc  *ui.Label
	focus bool
}

// statusEntry represents the various kinds of entries in the status bar.
type statusEntry int

const (
	statusLevel statusEntry = iota
	statusTurns
	statusMenu
	statusDirection
	statusHP
	statusAttack
	statusDefense
	statusXP
	statusGold
)

func (md *model) updateStatus() {
	g := md.g
	var entries []ui.MenuEntry

	stt := ui.StyledText{}.WithMarkups(Markups)

	// Map level.
	level := fmt.Sprintf(" L:%d ", g.Map.Level)
	if md.g.win {
		level = " L:@GWon!@N "
	}
	entries = append(entries, ui.MenuEntry{Text: stt.WithText(level), Disabled: true})

	// Turns.
	entries = append(entries, ui.MenuEntry{Text: stt.WithTextf("T:%d ", g.Turn), Disabled: true})

	// Menu button.
	if md.mode == modeMenu && md.menu.mode == modeGameMenu {
		entries = append(entries, ui.MenuEntry{Text: stt.WithTextf("@Y[M]@N")})
	} else {
		entries = append(entries, ui.MenuEntry{Text: stt.WithTextf("[M]")})
	}

	// Direction of the last attack or movement.
	dirs := " @B.@N "
	switch md.g.Dir {
	case gruid.Point{X: 1, Y: 0}:
		dirs = " @B→@N "
	case gruid.Point{X: -1, Y: 0}:
		dirs = " @B←@N "
	case gruid.Point{X: 0, Y: 1}:
		dirs = " @B↓@N "
	case gruid.Point{X: 0, Y: -1}:
		dirs = " @B↑@N "
	case gruid.Point{X: 1, Y: 1}:
		dirs = " @B↘@N "
	case gruid.Point{X: -1, Y: 1}:
		dirs = " @B↙@N "
	case gruid.Point{X: 1, Y: -1}:
		dirs = " @B↗@N "
	case gruid.Point{X: -1, Y: -1}:
		dirs = " @B↖@N "
	}
	entries = append(entries, ui.MenuEntry{
		Text:     stt.WithText(dirs),
		Disabled: true})

	// HP
	pa := g.PlayerActor()
	entries = append(entries, ui.MenuEntry{
		Text:     stt.WithTextf("HP:%s ", pa.fmtHP()),
		Disabled: true})

	// attack
	entries = append(entries, ui.MenuEntry{
		Text:     stt.WithTextf("A:%d ", pa.GetAttack()),
		Disabled: true})

	// defense
	entries = append(entries, ui.MenuEntry{
		Text:     stt.WithTextf("D:%d ", pa.GetDefense()),
		Disabled: true})

	// experience level
	entries = append(entries, ui.MenuEntry{
		Text:     stt.WithTextf("XL:%d ", XPLevel(pa.XP)),
		Disabled: true})

	// gold
	entries = append(entries, ui.MenuEntry{
		Text:     stt.WithTextf("@YG:%d@N ", g.Gold),
		Disabled: true})

	switch {
	case pa.IsDead():
		entries = append(entries, ui.MenuEntry{
			Text:     stt.WithText("@RDead@N "),
			Disabled: true})
	case md.g.win:
	default:
		pp := g.PP()
		if i, _ := g.ItemAt(pp); i >= 0 {
			ei := g.Entity(i)
			entries = append(entries, ui.MenuEntry{
				Text:     stt.WithTextf("%c ", ei.Rune).WithStyle(gruid.Style{Fg: ei.Color(), Attrs: AttrInMap}),
				Disabled: true})
		} else if t := g.Map.Terrain.At(pp); t != Floor {
			entries = append(entries, ui.MenuEntry{
				Text:     stt.WithTextf("%c ", MapRune(t)).WithStyle(gruid.Style{Fg: ColorForeground, Attrs: AttrInMap}),
				Disabled: true})
		}
		if md.targ.kb {
			entries = append(entries, ui.MenuEntry{
				Text:     stt.WithText("@C[Examine]@N "),
				Disabled: true})
		}
	}

	md.status.menu.SetEntries(entries)
}

func statusHPColor(hp, hpmax int) rune {
	switch {
	case hp <= 1 || hp <= hpmax/3:
		return 'O'
	case hp <= (3*hpmax)/4:
		return 'Y'
	default:
		return 'G'
	}
}

func (a *Actor) fmtHP() string {
	hp := max(a.HP, 0)
	return fmt.Sprintf("@%c%d/%d@N", statusHPColor(hp, a.MaxHP), hp, a.MaxHP)
}
