package cmd

import (
	"encoding/csv"
	"fmt"
	"io/ioutil"
	"os"
	"strconv"

	"github.com/morlab/ipldg/InputParameters"
	"github.com/morlab/ipldg/blockop"
	"github.com/morlab/ipldg/model_problems/ThermalBlock"
	"github.com/morlab/ipldg/reductor"
	"github.com/spf13/cobra"
)

// ReduceCmd runs the adaptive reduce-estimate-enrich loop on the
// thermal-block model problem.
var ReduceCmd = &cobra.Command{
	Use:   "reduce",
	Short: "Adaptive localized reduced-basis training on the thermal block",
	Long: `
Builds the domain-decomposed thermal-block FOM, then alternates between
reducing onto the current local bases, estimating the error, and locally
enriching every subdomain, until the round budget or tolerance is hit.

ipldg reduce -n 3 -f 8 -r 6`,
	Run: func(cmd *cobra.Command, args []string) {
		rp := &ReduceParams{}
		rp.GridN, _ = cmd.Flags().GetInt("gridN")
		rp.FineN, _ = cmd.Flags().GetInt("fineN")
		rp.Penalty, _ = cmd.Flags().GetFloat64("penalty")
		rp.Rounds, _ = cmd.Flags().GetInt("rounds")
		rp.Tolerance, _ = cmd.Flags().GetFloat64("tolerance")
		rp.InputFile, _ = cmd.Flags().GetString("inputFile")
		rp.OutputFile, _ = cmd.Flags().GetString("outputFile")
		rp.UseGlobalMatrix, _ = cmd.Flags().GetBool("globalMatrix")
		RunReduce(rp)
	},
}

func init() {
	rootCmd.AddCommand(ReduceCmd)
	ReduceCmd.Flags().IntP("gridN", "n", 3, "number of subdomains per side")
	ReduceCmd.Flags().IntP("fineN", "f", 8, "number of cells per side within a subdomain")
	ReduceCmd.Flags().Float64P("penalty", "p", 10., "interface penalty weight")
	ReduceCmd.Flags().IntP("rounds", "r", 6, "number of enrichment rounds")
	ReduceCmd.Flags().Float64P("tolerance", "t", 0., "stop when the global estimate drops below")
	ReduceCmd.Flags().StringP("inputFile", "I", "", "YAML file with reduction parameters")
	ReduceCmd.Flags().StringP("outputFile", "o", "", "CSV file for the estimator decay record")
	ReduceCmd.Flags().Bool("globalMatrix", false, "compute interaction terms with the global operator (diagnostic)")
}

type ReduceParams struct {
	GridN, FineN    int
	Penalty         float64
	Rounds          int
	Tolerance       float64
	InputFile       string
	OutputFile      string
	UseGlobalMatrix bool
	Diffusion       [][]float64
}

func RunReduce(rp *ReduceParams) {
	if len(rp.InputFile) != 0 {
		data, err := ioutil.ReadFile(rp.InputFile)
		if err != nil {
			panic(err)
		}
		ip := &InputParameters.ReductionParameters{}
		if err = ip.Parse(data); err != nil {
			panic(err)
		}
		ip.Print()
		rp.GridN, rp.FineN = ip.GridN, ip.FineN
		rp.Penalty, rp.Rounds, rp.Tolerance = ip.Penalty, ip.Rounds, ip.Tolerance
		rp.Diffusion = ip.Diffusion
		if len(ip.OutputFile) != 0 {
			rp.OutputFile = ip.OutputFile
		}
	}
	var (
		S      = rp.GridN * rp.GridN
		fom, g = ThermalBlock.New(rp.GridN, rp.FineN, rp.Penalty)
		red    = reductor.NewReductor(fom, g)
		rec    [][]string
	)
	fmt.Printf("FOM: %d subdomains, %d dofs each, %d total\n",
		S, rp.FineN*rp.FineN, fom.TotalDim())
	for round := 0; round < rp.Rounds; round++ {
		mu := trainingMu(rp, round, S)
		rom, err := red.Reduce()
		if err != nil {
			panic(err)
		}
		uROM, err := rom.Solve(mu)
		if err != nil {
			panic(err)
		}
		ests := red.AssembleErrorEstimator()
		globalEst, err := ests.Global.EstimateError(red.Reconstruct(uROM), mu)
		if err != nil {
			panic(err)
		}
		_, _, localEst, err := ests.Local.EstimateError(uROM, mu)
		if err != nil {
			panic(err)
		}
		fmt.Printf("round %d: basis = %v, global = %8.3e, local = %8.3e\n",
			round, red.BasisLength(), globalEst, localEst)
		rec = append(rec, []string{
			strconv.Itoa(round),
			strconv.FormatFloat(globalEst, 'e', 6, 64),
			strconv.FormatFloat(localEst, 'e', 6, 64),
		})
		if rp.Tolerance > 0 && globalEst < rp.Tolerance {
			fmt.Printf("tolerance reached after %d rounds\n", round)
			break
		}
		if err = red.EnrichAllLocally(mu, rp.UseGlobalMatrix); err != nil {
			panic(err)
		}
	}
	if len(rp.OutputFile) != 0 {
		writeDecay(rp.OutputFile, rec)
	}
}

// trainingMu picks the diffusion vector for a round: the configured
// training set when present, unit diffusion otherwise.
func trainingMu(rp *ReduceParams, round, S int) blockop.Mu {
	vals := make([]float64, S)
	for i := range vals {
		vals[i] = 1
	}
	if len(rp.Diffusion) != 0 {
		copy(vals, rp.Diffusion[round%len(rp.Diffusion)])
	}
	return blockop.Mu{ThermalBlock.DiffusionKey: vals}
}

func writeDecay(fileName string, rec [][]string) {
	f, err := os.Create(fileName)
	if err != nil {
		panic(err)
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err = w.Write([]string{"round", "global", "local"}); err != nil {
		panic(err)
	}
	if err = w.WriteAll(rec); err != nil {
		panic(err)
	}
	fmt.Printf("decay record written to %s\n", fileName)
}
