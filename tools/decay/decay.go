// Reads the CSV decay record written by `ipldg reduce -o` and renders the
// estimator convergence as a log-scale plot.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var (
	csvFile string
	outFile string
)

func main() {
	csvFilePtr := flag.String("csvFile", csvFile, "file containing the decay record of a reduction run")
	outFilePtr := flag.String("out", "decay.png", "output image file")
	flag.Parse()
	csvFile = *csvFilePtr
	outFile = *outFilePtr
	if len(csvFile) == 0 {
		flag.Usage()
		os.Exit(1)
	}
	fmt.Printf("Input file: %v\n", csvFile)
	rounds, global, local := readCSV(csvFile)

	p := plot.New()
	p.Title.Text = "Estimator decay"
	p.X.Label.Text = "enrichment round"
	p.Y.Label.Text = "estimate"
	p.Y.Scale = plot.LogScale{}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}

	addLine(p, "global", rounds, global)
	addLine(p, "local", rounds, local)

	if err := p.Save(6*vg.Inch, 4*vg.Inch, outFile); err != nil {
		panic(err)
	}
	fmt.Printf("plot written to %s\n", outFile)
}

func addLine(p *plot.Plot, label string, rounds []int, vals []float64) {
	pts := make(plotter.XYs, len(rounds))
	for i := range rounds {
		pts[i].X = float64(rounds[i])
		pts[i].Y = vals[i]
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		panic(err)
	}
	p.Add(line)
	p.Legend.Add(label, line)
}

func readCSV(fileName string) (rounds []int, global, local []float64) {
	f, err := os.Open(fileName)
	if err != nil {
		panic(err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		panic(err)
	}
	for i, rec := range records {
		if i == 0 {
			continue // header
		}
		round, err := strconv.Atoi(rec[0])
		if err != nil {
			panic(err)
		}
		g, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			panic(err)
		}
		l, err := strconv.ParseFloat(rec[2], 64)
		if err != nil {
			panic(err)
		}
		rounds = append(rounds, round)
		global = append(global, g)
		local = append(local, l)
	}
	return
}
