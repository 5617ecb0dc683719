package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"runtime/pprof"
	"sort"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/jamiealquiza/tachymeter"
	"github.com/olekukonko/tablewriter"
	"github.com/rodaine/table"
	"golang.org/x/exp/maps"

	"tempscan/scan"
)

var (
	filePath   string
	numWorkers int
	readChunk  int
	maxToken   int
	tableOut   bool
	repeat     int
	debug      bool
	profile    bool
)

func init() {
	flag.StringVar(&filePath, "filePath", "measurements.txt", "input measurements file")
	flag.IntVar(&numWorkers, "numWorkers", runtime.NumCPU(), "number of workers")
	flag.IntVar(&readChunk, "readChunk", 8*1024, "per-half read buffer size in bytes")
	flag.IntVar(&maxToken, "maxToken", 100, "maximum station name / temperature length")
	flag.BoolVar(&tableOut, "table", false, "print results as a table")
	flag.IntVar(&repeat, "repeat", 1, "run the pipeline N times and report timings")
	flag.BoolVar(&debug, "debug", false, "enable debug logging")
	flag.BoolVar(&profile, "profile", false, "profile cpu")
	flag.Parse()
}

func main() {
	handlerOpts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if debug {
		handlerOpts.Level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, handlerOpts))
	slog.SetDefault(logger)

	if profile {
		f, err := os.Create("cpu_profile.pprof")
		if err != nil {
			fmt.Println("unable to create CPU profile: ", err)
			return
		}
		defer f.Close()

		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Println("unable to start CPU profile: ", err)
			return
		}
		defer pprof.StopCPUProfile()
	}

	if repeat > 1 {
		benchRuns(logger)
		return
	}

	start := time.Now()
	stations, err := runOnce(logger)
	if err != nil {
		logger.Error("scan failed", slog.Any("err", err))
		os.Exit(1)
	}
	logger.Debug("scan finished",
		slog.Duration("elapsed", time.Since(start)),
		slog.Int("stations", len(stations)),
	)

	if tableOut {
		printTable(stations)
		return
	}
	printInline(stations)
}

func runOnce(logger *slog.Logger) (map[string]*scan.WeatherStation, error) {
	return scan.Run(context.Background(), filePath,
		scan.WithWorkers(numWorkers),
		scan.WithReadChunk(readChunk),
		scan.WithMaxTokenLen(maxToken),
		scan.WithLogger(logger),
	)
}

func sortedNames(stations map[string]*scan.WeatherStation) []string {
	names := maps.Keys(stations)
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

func printInline(stations map[string]*scan.WeatherStation) {
	fmt.Print("{")
	for i, name := range sortedNames(stations) {
		if i > 0 {
			fmt.Print(",")
		}
		ws := stations[name]
		fmt.Printf("%s=%.1f/%.1f", name, ws.Lowest, ws.Highest)
	}
	fmt.Print("}\n")
}

func printTable(stations map[string]*scan.WeatherStation) {
	tw := tablewriter.NewWriter(os.Stdout)
	tw.SetHeader([]string{"Station", "Lowest", "Highest"})
	for _, name := range sortedNames(stations) {
		ws := stations[name]
		tw.Append([]string{
			name,
			strconv.FormatFloat(ws.Lowest, 'f', 1, 64),
			strconv.FormatFloat(ws.Highest, 'f', 1, 64),
		})
	}
	tw.Render()
}

func benchRuns(logger *slog.Logger) {
	tm := tachymeter.New(&tachymeter.Config{Size: repeat})

	var stations map[string]*scan.WeatherStation
	for i := 0; i < repeat; i++ {
		start := time.Now()
		s, err := runOnce(logger)
		if err != nil {
			logger.Error("scan failed", slog.Any("err", err))
			os.Exit(1)
		}
		tm.AddTime(time.Since(start))
		stations = s
	}

	headerFmt := color.New(color.FgGreen, color.Underline).SprintfFunc()
	columnFmt := color.New(color.FgYellow).SprintfFunc()
	calc := tm.Calc()
	tbl := table.
		New("Runs", "Stations", "Min", "P50", "P99", "Max").
		WithHeaderFormatter(headerFmt).
		WithFirstColumnFormatter(columnFmt)
	tbl.AddRow(repeat, len(stations), calc.Time.Min, calc.Time.P50, calc.Time.P99, calc.Time.Max)
	tbl.Print()
}
