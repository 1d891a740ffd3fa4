// Command solve tries to solve battle puzzles from a file: one serialized
// state and its expected best side-one action per line. Grounded on the
// teacher's puzzle/puzzle.go: read lines, parse a position (here: a state),
// run the search, compare the chosen move against the expected one, tally
// and print solved/total plus aggregate node counts.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/battlecore/battlecore/engine"
	"github.com/battlecore/battlecore/notation"
	"github.com/battlecore/battlecore/search"
)

var (
	input      = flag.String("input", "", "file with '<state>|<expected-action>' lines")
	output     = flag.String("output", "", "file to write '<state>|<chosen-action>' lines")
	deadline   = flag.Duration("deadline", 0, "how much time to spend searching each puzzle")
	maxDepth   = flag.Int("max_depth", 0, "search up to max_depth plies")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
	quiet      = flag.Bool("quiet", false, "don't print individual puzzle results")
	floor      = flag.Float64("floor", 1e-9, "branch probability floor passed to the generator")
)

// puzzle is one parsed input line: a state and the expected best action for
// side one.
type puzzle struct {
	line     string
	state    *engine.State
	expected string
}

func parsePuzzle(line string) (puzzle, error) {
	parts := strings.SplitN(line, "|", 2)
	if len(parts) != 2 {
		return puzzle{}, fmt.Errorf("expected '<state>|<expected-action>', got %q", line)
	}
	st, err := notation.Deserialize(strings.TrimSpace(parts[0]))
	if err != nil {
		return puzzle{}, err
	}
	return puzzle{line: line, state: st, expected: strings.TrimSpace(parts[1])}, nil
}

func main() {
	log.SetFlags(log.Lshortfile)
	flag.Parse()

	if *input == "" {
		log.Fatal("--input not specified")
	}
	if *cpuprofile != "" {
		fin, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(fin)
		defer pprof.StopCPUProfile()
	}
	if *deadline == 0 && *maxDepth == 0 {
		log.Fatal("--deadline or --max_depth must be specified")
	}

	fin, err := os.Open(*input)
	if err != nil {
		log.Fatalf("cannot open %s for reading: %v", *input, err)
	}
	defer fin.Close()

	var fout *os.File
	if *output != "" {
		if fout, err = os.Create(*output); err != nil {
			log.Fatalf("cannot open %s for writing: %v", *output, err)
		}
		defer fout.Close()
	}

	solved, total := 0, 0
	var totalNodes uint64

	buf := bufio.NewReader(fin)
	for i, o := 0, 0; ; i++ {
		line, err := buf.ReadString('\n')
		if err != nil && err != io.EOF {
			log.Fatal(err)
		}
		if err == io.EOF && line == "" {
			break
		}

		line = strings.SplitN(line, "#", 2)[0]
		line = strings.TrimSpace(line)
		if line == "" {
			if err == io.EOF {
				break
			}
			continue
		}

		p, perr := parsePuzzle(line)
		if perr != nil {
			log.Println("error:", perr)
			log.Println("skipping", line)
			if err == io.EOF {
				break
			}
			continue
		}

		budget := *deadline
		if budget == 0 {
			budget = 24 * time.Hour // effectively uncapped, max_depth gates it instead
		}
		dl := search.NewDeadline(budget)
		searchDepth := 0 // 0: deepen until the deadline
		if *maxDepth > 0 {
			searchDepth = maxOf(*maxDepth, 1) + 1 // searches depths 0..max_depth
		}
		rec := &search.RecordingLogger{}
		matrix := search.RunExpectiminimax(p.state, dl, search.ExpectiminimaxConfig{
			Policy:           engine.RollAverage,
			ProbabilityFloor: *floor,
			MaxDepth:         searchDepth,
			Logger:           rec,
		})
		totalNodes += rec.Last.Nodes

		chosen := bestAction(matrix)
		chosenName, _ := notation.FormatAction(p.state, engine.SideOne, chosen)

		total++
		if chosenName == p.expected {
			solved++
		}

		if !*quiet {
			if o%25 == 0 {
				fmt.Println()
				fmt.Println("line   expected  chosen   depth  solved/total  puzzle")
				fmt.Println("----+----------+--------+------+-------------+------")
			}
			fmt.Printf("%4d %9s %8s %6d %5d/%5d %s\n",
				i+1, p.expected, chosenName, matrix.DepthReached, solved, total, line)
			o++
		}

		if fout != nil {
			fmt.Fprintf(fout, "%s|%s\n", line, chosenName)
		}

		if err == io.EOF {
			break
		}
	}

	fmt.Printf("%s solved %d out of %d ; nodes %d\n", *input, solved, total, totalNodes)
}

func maxOf(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// bestAction picks side-one's row with the best worst-case value from the
// payoff matrix, the same minimax-with-chance-nodes rule expectiminimax.go
// uses internally to pick actions during search.
func bestAction(matrix search.PayoffMatrix) engine.Option {
	bestIdx, best := 0, -1.0
	for i, row := range matrix.Values {
		worst := 1.0
		for _, v := range row {
			if v < worst {
				worst = v
			}
		}
		if worst > best {
			best, bestIdx = worst, i
		}
	}
	if len(matrix.SideOneActions) == 0 {
		return engine.Option{Kind: engine.OptionNoOp}
	}
	return matrix.SideOneActions[bestIdx]
}
