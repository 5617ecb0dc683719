// tempgen writes a synthetic measurements file for exercising tempscan.
// Station frequency follows a scrambled zipfian distribution and each
// reading is drawn from a gaussian around the station's base temperature.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/pingcap/go-ycsb/pkg/generator"
)

var (
	outPath string
	rows    int
	seed    int64
)

func init() {
	flag.StringVar(&outPath, "out", "measurements.txt", "output file")
	flag.IntVar(&rows, "rows", 1_000_000, "number of rows to generate")
	flag.Int64Var(&seed, "seed", time.Now().Unix(), "rng seed")
	flag.Parse()
}

var stations = []struct {
	name string
	mean float64
}{
	{"Abha", 18.0}, {"Accra", 26.4}, {"Addis Ababa", 16.0}, {"Adelaide", 17.3},
	{"Amsterdam", 10.2}, {"Anchorage", 2.8}, {"Athens", 19.2}, {"Auckland", 15.2},
	{"Baghdad", 22.8}, {"Bangkok", 28.6}, {"Barcelona", 18.2}, {"Beijing", 12.9},
	{"Bergen", 7.7}, {"Berlin", 10.3}, {"Bogotá", 14.0}, {"Brisbane", 21.4},
	{"Cairo", 21.4}, {"Cape Town", 16.2}, {"Chicago", 9.8}, {"Copenhagen", 9.1},
	{"Dakar", 24.0}, {"Darwin", 27.6}, {"Denver", 10.4}, {"Dubai", 26.9},
	{"Erbil", 19.5}, {"Hanoi", 23.6}, {"Helsinki", 5.9}, {"Honolulu", 25.4},
	{"Istanbul", 13.9}, {"Jakarta", 26.7}, {"Lagos", 26.8}, {"Lisbon", 17.5},
	{"Mexico City", 17.5}, {"Moscow", 5.8}, {"Nairobi", 17.8}, {"Oslo", 5.7},
	{"Reykjavík", 4.3}, {"Singapore", 27.0}, {"Tokyo", 15.4}, {"Wellington", 12.9},
}

func main() {
	f, err := os.Create(outPath)
	if err != nil {
		log.Fatalf("unable to create %s: %v", outPath, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	r := rand.New(rand.NewSource(seed))
	g := generator.NewScrambledZipfian(0, int64(len(stations)-1), generator.ZipfianConstant)

	for i := 0; i < rows; i++ {
		s := stations[int(g.Next(r))%len(stations)]
		temp := s.mean + r.NormFloat64()*7
		// keep every reading inside the one-or-two integer digit grammar
		if temp > 99.9 {
			temp = 99.9
		}
		if temp < -99.9 {
			temp = -99.9
		}
		fmt.Fprintf(w, "%s;%.1f\n", s.name, temp)
	}
	if err := w.Flush(); err != nil {
		log.Fatalf("unable to flush %s: %v", outPath, err)
	}
}
