package main

import (
	"flag"
	"fmt"
	"sort"
	"strings"

	"github.com/Garsondee/Shoot-Or-Die/internal/game"
)

type runStats struct {
	runIndex int
	level    string
	script   string

	outcome game.SessionState
	endTick int
	elapsed float32

	firstSightTick int
	firstJumpTick  int
	firstHitTick   int

	sightGained int
	sightLost   int
	jumps       int
	landings    int

	barrelsHit   int
	barrelsTotal int
}

func main() {
	var levelArg string
	var scriptArg string
	var ticks int
	var dt float64
	var period int
	var verbose bool

	flag.StringVar(&levelArg, "level", "all", "level name, or \"all\"")
	flag.StringVar(&scriptArg, "scripts", "idle,strafe,sweep", "comma-separated player scripts")
	flag.IntVar(&ticks, "ticks", 3600, "max ticks per run")
	flag.Float64Var(&dt, "dt", 1.0/60.0, "seconds per tick")
	flag.IntVar(&period, "period", 30, "ticks per strafe/fire cycle")
	flag.BoolVar(&verbose, "verbose", false, "print each run's event log")
	flag.Parse()

	if ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		return
	}
	if dt <= 0 {
		fmt.Println("error: -dt must be > 0")
		return
	}
	levels, err := parseLevels(levelArg)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}
	scripts, err := parseScripts(scriptArg)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}

	fmt.Printf("=== Headless Pursuit Report ===\n")
	fmt.Printf("levels=%s scripts=%s ticks=%d dt=%.4f\n\n", strings.Join(levels, ","), strings.Join(scripts, ","), ticks, dt)

	var all []runStats
	for _, name := range levels {
		for _, script := range scripts {
			rs, log, err := runScenario(len(all)+1, name, script, period, ticks, float32(dt), verbose)
			if err != nil {
				fmt.Printf("error: %v\n", err)
				return
			}
			all = append(all, rs)
			printRun(rs)
			if verbose {
				fmt.Print(log)
				fmt.Println()
			}
		}
	}

	printAggregate(all)
}

func parseLevels(arg string) ([]string, error) {
	if arg == "all" || arg == "" {
		return game.LevelNames(), nil
	}
	known := map[string]struct{}{}
	for _, n := range game.LevelNames() {
		known[n] = struct{}{}
	}
	var out []string
	for _, n := range strings.Split(arg, ",") {
		n = strings.TrimSpace(n)
		if _, ok := known[n]; !ok {
			return nil, fmt.Errorf("unknown level %q (known: %s)", n, joinSet(known))
		}
		out = append(out, n)
	}
	return out, nil
}

func parseScripts(arg string) ([]string, error) {
	var out []string
	for _, s := range strings.Split(arg, ",") {
		s = strings.TrimSpace(s)
		switch s {
		case "idle", "strafe", "sweep":
			out = append(out, s)
		case "":
		default:
			return nil, fmt.Errorf("unsupported script %q (supported: idle, strafe, sweep)", s)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no scripts selected")
	}
	return out, nil
}

func scriptFor(name string, period int) game.PlayerScript {
	switch name {
	case "strafe":
		return game.ScriptStrafe(period)
	case "sweep":
		return game.ScriptSweepFire(period / 3)
	default:
		return game.ScriptIdle
	}
}

func runScenario(runIndex int, levelName, script string, period, ticks int, dt float32, verbose bool) (runStats, string, error) {
	lvl, err := game.LoadLevel(levelName)
	if err != nil {
		return runStats{}, "", err
	}
	ts, err := game.NewTestSim(
		game.WithLevelConfig(lvl.Config),
		game.WithVerbose(verbose),
		game.WithScript(scriptFor(script, period)),
		game.WithTimestep(dt),
	)
	if err != nil {
		return runStats{}, "", err
	}
	ts.RunTicks(ticks)

	s := ts.Session
	entries := ts.SimLog.Entries()
	hit, total := s.BarrelCounts()
	return runStats{
		runIndex:       runIndex,
		level:          levelName,
		script:         script,
		outcome:        s.State(),
		endTick:        s.Tick(),
		elapsed:        s.Elapsed(),
		firstSightTick: firstTick(entries, "sight", "los_acquired", ""),
		firstJumpTick:  firstTick(entries, "jump", "jump_start", ""),
		firstHitTick:   firstTick(entries, "combat", "barrel_hit", ""),
		sightGained:    ts.SimLog.CountCategory("sight", "los_acquired"),
		sightLost:      ts.SimLog.CountCategory("sight", "los_lost"),
		jumps:          ts.SimLog.CountCategory("jump", "jump_start"),
		landings:       ts.SimLog.CountCategory("jump", "jump_land"),
		barrelsHit:     hit,
		barrelsTotal:   total,
	}, ts.SimLog.Format(), nil
}

func firstTick(entries []game.SimLogEntry, category, key, contains string) int {
	for _, e := range entries {
		if e.Category != category || e.Key != key {
			continue
		}
		if contains == "" || strings.Contains(e.Value, contains) {
			return e.Tick
		}
	}
	return -1
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (level=%s script=%s) ---\n", rs.runIndex, rs.level, rs.script)
	fmt.Printf("outcome=%s end_tick=%d elapsed=%.2fs\n", rs.outcome, rs.endTick, rs.elapsed)
	fmt.Printf("phase_markers: first_sight=%d first_jump=%d first_hit=%d\n",
		rs.firstSightTick, rs.firstJumpTick, rs.firstHitTick)
	fmt.Printf("event_totals: los_acquired=%d los_lost=%d jump_start=%d jump_land=%d\n",
		rs.sightGained, rs.sightLost, rs.jumps, rs.landings)
	fmt.Printf("barrels: %d/%d\n", rs.barrelsHit, rs.barrelsTotal)
	fmt.Println()
}

// outcomeCounts tallies runs by terminal state.
func outcomeCounts(all []runStats) (won, lost, timedOut int) {
	for _, rs := range all {
		switch rs.outcome {
		case game.StateWon:
			won++
		case game.StateLost:
			lost++
		default:
			timedOut++
		}
	}
	return won, lost, timedOut
}

func printAggregate(all []runStats) {
	won, lost, timedOut := outcomeCounts(all)

	type levelAgg struct {
		runs      int
		lost      int
		catchSecs float64
		jumps     int
	}
	byLevel := map[string]*levelAgg{}
	var sightTicks, jumpTicks []int
	for _, rs := range all {
		ag, ok := byLevel[rs.level]
		if !ok {
			ag = &levelAgg{}
			byLevel[rs.level] = ag
		}
		ag.runs++
		ag.jumps += rs.jumps
		if rs.outcome == game.StateLost {
			ag.lost++
			ag.catchSecs += float64(rs.elapsed)
		}
		if rs.firstSightTick >= 0 {
			sightTicks = append(sightTicks, rs.firstSightTick)
		}
		if rs.firstJumpTick >= 0 {
			jumpTicks = append(jumpTicks, rs.firstJumpTick)
		}
	}

	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d won=%d lost=%d timed_out=%d\n", len(all), won, lost, timedOut)
	fmt.Printf("phase_marker_avg_ticks: first_sight=%s first_jump=%s\n",
		avgTickString(sightTicks), avgTickString(jumpTicks))

	names := make([]string, 0, len(byLevel))
	for n := range byLevel {
		names = append(names, n)
	}
	sort.Strings(names)
	fmt.Println("\n--- Per Level ---")
	for _, n := range names {
		ag := byLevel[n]
		avgCatch := "n/a"
		if ag.lost > 0 {
			avgCatch = fmt.Sprintf("%.2fs", ag.catchSecs/float64(ag.lost))
		}
		fmt.Printf("  %-10s runs=%d caught=%d avg_catch=%s avg_jumps=%.1f\n",
			n, ag.runs, ag.lost, avgCatch, avg(ag.jumps, ag.runs))
	}
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}

func joinSet(s map[string]struct{}) string {
	if len(s) == 0 {
		return "none"
	}
	labels := make([]string, 0, len(s))
	for k := range s {
		labels = append(labels, k)
	}
	sort.Strings(labels)
	return strings.Join(labels, ",")
}
