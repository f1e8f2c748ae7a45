package main

import (
	"math/rand/v2"
	"testing"

	"codeberg.org/anaseto/gruid"
)

// newTestGame returns a game with a freshly generated first level.
func newTestGame() *Game {
	gd := gruid.NewGrid(UIWidth, UIHeight)
	md := &model{gd: gd, g: &Game{}, targ: &targeting{}}
	md.initStructures()
	md.initWidgets()
	md.initKeys()
	md.InitAnimations()
	g := md.g
	g.md = md
	g.rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	g.Mods = make([]bool, NMods)
	g.Init()
	g.InitLevel()
	return g
}

// boxRoom is the hand-carved room used by newBoxGame.
var boxRoom = Room{X: 1, Y: 1, W: 30, H: 18}

// newBoxGame returns a game whose first level is a single hand-carved
// rectangular room, with the player at pp and no generated entities. It
// gives tests full control over positions and terrain.
func newBoxGame(pp gruid.Point) *Game {
	gd := gruid.NewGrid(UIWidth, UIHeight)
	md := &model{gd: gd, g: &Game{}, targ: &targeting{}}
	md.initStructures()
	md.initWidgets()
	md.initKeys()
	md.InitAnimations()
	g := md.g
	g.md = md
	g.rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	g.Mods = make([]bool, NMods)
	g.Init()
	g.Map.Level = 1
	carveRect(g, boxRoom)
	g.Map.Rooms = []Room{boxRoom}
	g.Map.ActorCache = g.Map.ActorCache.New()
	pl := g.PlayerEntity()
	pl.P = pp
	pl.KnownP = pp
	g.Map.ActorCache.SetU(pp, PlayerID)
	return g
}

func carveRect(g *Game, r Room) {
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			g.Map.Terrain.Set(gruid.Point{X: x, Y: y}, Floor)
		}
	}
}

// addMonster places a monster of the given species at p.
func addMonster(t *testing.T, g *Game, mk speciesKind, p gruid.Point) (ID, *Actor) {
	t.Helper()
	e, err := NewMonster(mk)
	if err != nil {
		t.Fatalf("NewMonster(%v): %v", mk, err)
	}
	e.P = p
	i := g.AddEntity(e)
	g.Map.ActorCache.SetU(p, i)
	return i, e.Actor()
}

func movePlayerTo(g *Game, to gruid.Point) {
	pl := g.PlayerEntity()
	g.Map.ActorCache.SetU(pl.P, 0)
	pl.P = to
	pl.KnownP = to
	g.Map.ActorCache.SetU(to, PlayerID)
}

func TestMonsterSpotsPlayer(t *testing.T) {
	g := newBoxGame(gruid.Point{X: 12, Y: 7})
	i, ai := addMonster(t, g, Goblin, gruid.Point{X: 7, Y: 7})
	p, pp := g.Entity(i).P, g.PP()
	if !g.MonsterSees(p, pp) {
		t.Fatalf("monster at %v does not see the player at %v on open floor", p, pp)
	}
	g.UpdateMind(i, ai)
	mi := ai.Mind
	if mi.State != Hostile {
		t.Errorf("state %v instead of Hostile after sighting", mi.State)
	}
	if mi.LastSeen != pp {
		t.Errorf("last sighting %v instead of %v", mi.LastSeen, pp)
	}
	if mi.Unseen != 0 {
		t.Errorf("unseen counter %d after a sighting", mi.Unseen)
	}
	to := g.NextMove(i, ai)
	if to == p {
		t.Fatalf("hostile monster holds still")
	}
	if Distance(to, pp) >= Distance(p, pp) {
		t.Errorf("chase step %v does not close in on %v", to, pp)
	}
}

func TestChaseClosesIn(t *testing.T) {
	g := newBoxGame(gruid.Point{X: 12, Y: 7})
	i, ai := addMonster(t, g, Goblin, gruid.Point{X: 7, Y: 7})
	pp := g.PP()
	for range 6 {
		g.UpdateMind(i, ai)
		p := g.Entity(i).P
		to := g.NextMove(i, ai)
		if to == pp {
			// Next to the player: the move becomes an attack.
			return
		}
		if Distance(to, pp) >= Distance(p, pp) {
			t.Fatalf("chase step %v -> %v does not close in on %v", p, to, pp)
		}
		g.MoveActor(i, ai, to)
	}
	t.Errorf("monster still at %v after 6 chase steps toward %v", g.Entity(i).P, pp)
}

func TestWoundedMonsterFlees(t *testing.T) {
	g := newBoxGame(gruid.Point{X: 7, Y: 5})
	i, ai := addMonster(t, g, Goblin, gruid.Point{X: 9, Y: 5})
	ai.HP = 1
	g.UpdateMind(i, ai)
	if ai.Mind.State != Fleeing {
		t.Fatalf("state %v instead of Fleeing at %d/%d HP", ai.Mind.State, ai.HP, ai.MaxHP)
	}
	p, pp := g.Entity(i).P, g.PP()
	to := g.NextMove(i, ai)
	if Distance(to, pp) <= Distance(p, pp) {
		t.Errorf("flee step %v -> %v does not get away from %v", p, to, pp)
	}
}

func TestFleeThreshold(t *testing.T) {
	a := &Actor{HP: 2, MaxHP: 8, Kind: Goblin}
	if a.shouldFlee() {
		t.Errorf("fleeing at exactly a quarter of max HP")
	}
	a.HP = 1
	if !a.shouldFlee() {
		t.Errorf("not fleeing below a quarter of max HP")
	}
	orc := &Actor{HP: 1, MaxHP: 15, Kind: Orc}
	if orc.shouldFlee() {
		t.Errorf("orcs never flee")
	}
}

func TestOrcNeverFlees(t *testing.T) {
	g := newBoxGame(gruid.Point{X: 7, Y: 5})
	i, ai := addMonster(t, g, Orc, gruid.Point{X: 9, Y: 5})
	ai.HP = 1
	g.UpdateMind(i, ai)
	if ai.Mind.State != Hostile {
		t.Errorf("wounded orc state %v instead of Hostile", ai.Mind.State)
	}
}

func TestChaseMemory(t *testing.T) {
	g := newBoxGame(gruid.Point{X: 12, Y: 7})
	i, ai := addMonster(t, g, Goblin, gruid.Point{X: 7, Y: 7})
	g.UpdateMind(i, ai)
	mi := ai.Mind
	if mi.State != Hostile {
		t.Fatalf("state %v instead of Hostile after sighting", mi.State)
	}
	seen := mi.LastSeen
	movePlayerTo(g, gruid.Point{X: 28, Y: 16})
	for n := 1; n <= MemoryTurns; n++ {
		g.UpdateMind(i, ai)
		if mi.State != Hostile {
			t.Fatalf("gave up the chase after only %d turns without sighting", n)
		}
		if mi.Unseen != n {
			t.Errorf("unseen counter %d instead of %d", mi.Unseen, n)
		}
	}
	p := g.Entity(i).P
	to := g.NextMove(i, ai)
	if Distance(to, seen) >= Distance(p, seen) {
		t.Errorf("step %v -> %v does not head to the last sighting %v", p, to, seen)
	}
	g.UpdateMind(i, ai)
	if mi.State != Idle {
		t.Errorf("state %v instead of Idle once memory lapsed without a home room", mi.State)
	}
}

func TestFleeingCalmsDown(t *testing.T) {
	g := newBoxGame(gruid.Point{X: 7, Y: 5})
	i, ai := addMonster(t, g, Goblin, gruid.Point{X: 9, Y: 5})
	ai.HP = 1
	g.UpdateMind(i, ai)
	mi := ai.Mind
	if mi.State != Fleeing {
		t.Fatalf("state %v instead of Fleeing", mi.State)
	}
	movePlayerTo(g, gruid.Point{X: 28, Y: 16})
	for n := 1; n <= FleeMemory; n++ {
		g.UpdateMind(i, ai)
		if mi.State != Fleeing {
			t.Fatalf("stopped fleeing after only %d turns without sighting", n)
		}
	}
	g.UpdateMind(i, ai)
	if mi.State != Idle {
		t.Errorf("state %v instead of Idle once flight memory lapsed", mi.State)
	}
}

func TestReturningHome(t *testing.T) {
	g := newBoxGame(gruid.Point{X: 3, Y: 16})
	// A corridor outside the home room.
	corridor := Room{X: 31, Y: 7, W: 14, H: 1}
	carveRect(g, corridor)
	i, ai := addMonster(t, g, Goblin, gruid.Point{X: 40, Y: 7})
	room := &g.Map.Rooms[0]
	ai.AssignRoom(room)
	mi := ai.Mind
	mi.setState(Hostile)
	mi.LastSeen = gruid.Point{X: 44, Y: 7}
	mi.Unseen = MemoryTurns
	g.UpdateMind(i, ai)
	if mi.State != Returning {
		t.Fatalf("state %v instead of Returning after losing the player outside home", mi.State)
	}
	for n := 0; mi.State == Returning; n++ {
		if n > 100 {
			t.Fatalf("monster at %v never settled back home", g.Entity(i).P)
		}
		p := g.Entity(i).P
		to := g.NextMove(i, ai)
		if to == p {
			t.Fatalf("returning monster stalled at %v", p)
		}
		g.MoveActor(i, ai, to)
		g.UpdateMind(i, ai)
	}
	if mi.State != Idle {
		t.Errorf("state %v instead of Idle back home", mi.State)
	}
	if p := g.Entity(i).P; !room.Contains(p) {
		t.Errorf("monster settled at %v outside its home room", p)
	}
}

func TestReturningNeedsHome(t *testing.T) {
	g := newBoxGame(gruid.Point{X: 3, Y: 16})
	i, ai := addMonster(t, g, GutterRat, gruid.Point{X: 25, Y: 5})
	ai.mind().setState(Returning)
	if to := g.NextMove(i, ai); to != g.Entity(i).P {
		t.Errorf("homeless monster tried to return somewhere: %v", to)
	}
}

func TestIdleWanderRhythm(t *testing.T) {
	g := newBoxGame(gruid.Point{X: 3, Y: 16})
	i, ai := addMonster(t, g, GutterRat, gruid.Point{X: 20, Y: 7})
	room := &g.Map.Rooms[0]
	ai.AssignRoom(room)
	for n := range 12 {
		g.UpdateMind(i, ai)
		p := g.Entity(i).P
		to := g.NextMove(i, ai)
		if n%3 < 2 {
			if to != p {
				t.Errorf("wander step on resting call %d", n)
			}
			continue
		}
		if to == p {
			t.Errorf("no wander step on call %d", n)
			continue
		}
		d := to.Sub(p)
		if abs(d.X) > 1 || abs(d.Y) > 1 {
			t.Errorf("wander step %v -> %v too far", p, to)
		}
		if !room.Contains(to) {
			t.Errorf("wander step %v outside the home room", to)
		}
		g.MoveActor(i, ai, to)
	}
}

func TestWanderStaysInRoom(t *testing.T) {
	g := newBoxGame(gruid.Point{X: 3, Y: 16})
	// A tempting corridor just outside the home room.
	carveRect(g, Room{X: 31, Y: 7, W: 10, H: 1})
	i, ai := addMonster(t, g, GutterRat, gruid.Point{X: 30, Y: 7})
	room := &g.Map.Rooms[0]
	ai.AssignRoom(room)
	for range 30 {
		to := g.NextMove(i, ai)
		if !room.Contains(to) {
			t.Fatalf("wander step %v outside the home room", to)
		}
		if to != g.Entity(i).P {
			g.MoveActor(i, ai, to)
		}
	}
}

func TestAlertInvestigates(t *testing.T) {
	g := newBoxGame(gruid.Point{X: 3, Y: 16})
	i, ai := addMonster(t, g, CaveSpider, gruid.Point{X: 25, Y: 5})
	mi := ai.mind()
	mi.setState(Alert)
	if to := g.NextMove(i, ai); to != g.Entity(i).P {
		t.Errorf("alert monster with no sighting moved to %v", to)
	}
	mi.LastSeen = gruid.Point{X: 20, Y: 5}
	mi.Unseen = 1
	p := g.Entity(i).P
	to := g.NextMove(i, ai)
	if to == p || Distance(to, mi.LastSeen) >= Distance(p, mi.LastSeen) {
		t.Errorf("alert step %v -> %v does not investigate %v", p, to, mi.LastSeen)
	}
}

func TestDoorOpeningMonster(t *testing.T) {
	g := newBoxGame(gruid.Point{X: 25, Y: 15})
	// Split the room with a wall pierced by a single closed door.
	for y := 1; y < 19; y++ {
		g.Map.Terrain.Set(gruid.Point{X: 10, Y: y}, Wall)
	}
	door := gruid.Point{X: 10, Y: 7}
	g.Map.Terrain.Set(door, DoorClosed)
	i, ai := addMonster(t, g, Kobold, gruid.Point{X: 9, Y: 7})
	mi := ai.mind()
	mi.setState(Hostile)
	mi.LastSeen = gruid.Point{X: 12, Y: 7}
	mi.Unseen = 1
	g.HandleMonsterTurn(i, ai)
	if g.Map.Terrain.At(door) != DoorOpen {
		t.Fatalf("kobold did not open the door on its way")
	}
	if p := g.Entity(i).P; p != (gruid.Point{X: 9, Y: 7}) {
		t.Errorf("monster at %v moved on the turn spent opening the door", p)
	}
	g.HandleMonsterTurn(i, ai)
	if p := g.Entity(i).P; p != door {
		t.Errorf("monster at %v instead of stepping through the opened door", p)
	}
}

func TestDoorBlocksMonster(t *testing.T) {
	g := newBoxGame(gruid.Point{X: 25, Y: 15})
	for y := 1; y < 19; y++ {
		g.Map.Terrain.Set(gruid.Point{X: 10, Y: y}, Wall)
	}
	door := gruid.Point{X: 10, Y: 7}
	g.Map.Terrain.Set(door, DoorClosed)
	// Zombies do not open doors.
	i, ai := addMonster(t, g, Zombie, gruid.Point{X: 9, Y: 7})
	mi := ai.mind()
	mi.setState(Hostile)
	mi.LastSeen = gruid.Point{X: 12, Y: 7}
	mi.Unseen = 1
	g.HandleMonsterTurn(i, ai)
	if g.Map.Terrain.At(door) != DoorClosed {
		t.Errorf("door opened by a monster that cannot open doors")
	}
	if p := g.Entity(i).P; p != (gruid.Point{X: 9, Y: 7}) {
		t.Errorf("monster at %v moved despite the closed door", p)
	}
}

func TestGreedyApproachWithoutPath(t *testing.T) {
	g := newBoxGame(gruid.Point{X: 25, Y: 15})
	for y := 1; y < 19; y++ {
		g.Map.Terrain.Set(gruid.Point{X: 10, Y: y}, Wall)
	}
	g.Map.Terrain.Set(gruid.Point{X: 10, Y: 7}, DoorClosed)
	i, ai := addMonster(t, g, Zombie, gruid.Point{X: 9, Y: 9})
	mi := ai.mind()
	mi.setState(Hostile)
	mi.LastSeen = gruid.Point{X: 12, Y: 12}
	mi.Unseen = 1
	to := g.NextMove(i, ai)
	if to != (gruid.Point{X: 9, Y: 10}) {
		t.Errorf("greedy step %v instead of %v toward the unreachable target", to, gruid.Point{X: 9, Y: 10})
	}
}

func TestBlockedStepRetried(t *testing.T) {
	g := newBoxGame(gruid.Point{X: 25, Y: 16})
	i, ai := addMonster(t, g, Goblin, gruid.Point{X: 5, Y: 7})
	j, aj := addMonster(t, g, GutterRat, gruid.Point{X: 6, Y: 7})
	mi := ai.mind()
	mi.setState(Hostile)
	mi.LastSeen = gruid.Point{X: 9, Y: 7}
	mi.Unseen = 1
	g.HandleMonsterTurn(i, ai)
	if p := g.Entity(i).P; p != (gruid.Point{X: 5, Y: 7}) {
		t.Fatalf("monster at %v moved through a blocking monster", p)
	}
	// The blocker steps aside: the pending step goes through.
	g.MoveActor(j, aj, gruid.Point{X: 6, Y: 12})
	g.HandleMonsterTurn(i, ai)
	if p := g.Entity(i).P; p != (gruid.Point{X: 6, Y: 7}) {
		t.Errorf("monster at %v instead of retrying the blocked step", p)
	}
}
