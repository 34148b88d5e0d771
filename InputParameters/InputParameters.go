package InputParameters

import (
	"fmt"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML input file
type ReductionParameters struct {
	Title      string      `yaml:"Title"`
	GridN      int         `yaml:"GridN"`      // subdomains per side
	FineN      int         `yaml:"FineN"`      // cells per side within a subdomain
	Penalty    float64     `yaml:"Penalty"`    // interface penalty weight
	Diffusion  [][]float64 `yaml:"Diffusion"`  // training set, one diffusion vector per round
	Rounds     int         `yaml:"Rounds"`     // enrichment rounds
	Tolerance  float64     `yaml:"Tolerance"`  // stop when the global estimate drops below
	OutputFile string      `yaml:"OutputFile"` // CSV decay record, empty = no file
}

func (ip *ReductionParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

func (ip *ReductionParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("%d x %d\t\t= Subdomain layout\n", ip.GridN, ip.GridN)
	fmt.Printf("%d x %d\t\t= Cells per subdomain\n", ip.FineN, ip.FineN)
	fmt.Printf("%8.5f\t= Penalty\n", ip.Penalty)
	fmt.Printf("%d\t\t= Rounds\n", ip.Rounds)
	fmt.Printf("%8.2e\t= Tolerance\n", ip.Tolerance)
	for i, mu := range ip.Diffusion {
		fmt.Printf("Diffusion[%d] = %v\n", i, mu)
	}
}
