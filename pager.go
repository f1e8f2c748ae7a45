package main

import (
	"fmt"
	"strings"

	"codeberg.org/anaseto/gruid"
	"codeberg.org/anaseto/gruid/ui"
)

// pager gathers the structures used in the various kinds of pagers.
type pager struct {
	pg     *ui.Pager       // pager widget
	mode   pagerMode       // pager mode
	markup ui.StyledText   // styled text with default markup for pager
	lines  []ui.StyledText // log lines cache (unused in dump & help modes)
}

// pagerMode represents the available pager modes
type pagerMode int

const (
	modeLogs pagerMode = iota
	modeDump
	modeHelp
)

func (md *model) updatePager(msg gruid.Msg) gruid.Effect {
	switch md.pager.mode {
	case modeDump:
		md.pager.pg.Update(msg)
		if md.pager.pg.Action() == ui.PagerQuit {
			md.mode = modeQuitting
			return gruid.End()
		}
	default:
		md.pager.pg.Update(msg)
		if md.pager.pg.Action() == ui.PagerQuit {
			md.mode = modeNormal
		}
	}
	return nil
}

// dump fills the pager with the game summary shown after a win or a death,
// along with the outcome of writing the full dump.
func (md *model) dump(msg string, err error) {
	s := md.g.DumpSummary()
	lines := strings.Split(s, "\n")
	stts := []ui.StyledText{}
	for _, l := range lines {
		stts = append(stts, ui.Text(l))
	}
	var details string
	if err != nil {
		details = fmt.Sprintf("Error writing dump: %v.", err)
	} else {
		details = msg
	}
	stts = append(stts, ui.Text(details))
	md.pager.pg.SetLines(stts)
	md.pager.pg.SetCursor(gruid.Point{X: 0, Y: 0})
}
