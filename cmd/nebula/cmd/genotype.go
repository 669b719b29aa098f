package cmd

import (
	"encoding/json"
	"os"
	"sort"

	"github.com/shenwei356/stable"
	"github.com/spf13/cobra"

	"github.com/shenwei356/nebula/internal/counter"
	"github.com/shenwei356/nebula/internal/genotype"
	"github.com/shenwei356/nebula/internal/manifest"
	"github.com/shenwei356/nebula/internal/sv"
)

var genotypeCmd = &cobra.Command{
	Use:   "genotype <batch.json.gz> <counts.json> <out.bed>",
	Short: "build and solve the genotyping LP, emitting calls per track",
	Long: `genotype assigns each retained track a dense LP index, builds the
count-balance/absolute-error constraints of spec.md §4.7, solves the
resulting linear program, and decodes each track's genotype fraction
into absent/het/hom.`,
	Args: cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		log := loggerFor("genotype", cmd)
		cfg := configFromFlags(cmd)
		checkError(cfg.Validate())

		batchPath, err := requireFile(args[0])
		checkError(err)
		tracks, err := manifest.ReadMerged(batchPath)
		checkError(err)

		countsPath, err := requireFile(args[1])
		checkError(err)
		f, err := os.Open(countsPath)
		checkError(err)
		var records map[string]*counter.Record
		checkError(json.NewDecoder(f).Decode(&records))
		f.Close()

		trackEvents := make(map[string]sv.Event, len(tracks))
		for _, t := range tracks {
			trackEvents[t.Name] = sv.Event{Chrom: t.Chrom, Begin: t.Begin, End: t.End, Kind: kindFromString(t.Kind)}
		}

		kmerKeys := make([]string, 0, len(records))
		for km := range records {
			kmerKeys = append(kmerKeys, km)
		}
		sort.Strings(kmerKeys)

		var counted []sv.CountedKmer
		for _, km := range kmerKeys {
			rec := records[km]
			counted = append(counted, sv.CountedKmer{
				InnerKmer: rec.InnerKmer,
				Count:     rec.Count,
				Doubt:     rec.Doubt,
				Total:     rec.Total,
				Residue:   rec.InnerKmer.RefCount - 1,
				Tracks:    map[string]int{rec.Track: 1},
			})
		}

		perEvent, err := cmd.Flags().GetBool("per-event")
		checkError(err)

		model := genotype.NewModel(trackEvents, counted, cfg.Coverage)

		var genotypes []genotype.Genotype
		var fractions []float64
		if perEvent {
			genotypes, fractions, err = genotype.PerEvent(model)
		} else {
			genotypes, fractions, err = model.SolveWithFractions(nil)
		}
		checkError(err)

		out, err := os.Create(expandPath(args[2]))
		checkError(err)
		defer out.Close()
		batch, _ := cmd.Flags().GetString("batch")
		checkError(genotype.WriteBED(out, model, genotypes, fractions, batch))

		printSummary(model, genotypes, fractions)
		log.Infof("genotyped %d tracks", len(model.Tracks))
	},
}

func kindFromString(s string) sv.Kind {
	if s == "INV" {
		return sv.Inversion
	}
	return sv.Deletion
}

// printSummary renders a plain-text genotype summary table, ported
// from the teacher's unikmer/cmd/info.go use of shenwei356/stable for
// aligned result tables.
func printSummary(m genotype.Model, genotypes []genotype.Genotype, fractions []float64) {
	style := &stable.TableStyle{
		Name:      "plain",
		HeaderRow: stable.RowStyle{Begin: "", Sep: "  ", End: ""},
		DataRow:   stable.RowStyle{Begin: "", Sep: "  ", End: ""},
		Padding:   "",
	}
	columns := []stable.Column{
		{Header: "track"},
		{Header: "chrom"},
		{Header: "begin", Align: stable.AlignRight},
		{Header: "end", Align: stable.AlignRight},
		{Header: "genotype"},
		{Header: "fraction", Align: stable.AlignRight},
	}
	tbl := stable.New()
	tbl.HeaderWithFormat(columns)
	for i, tr := range m.Tracks {
		g := genotypes[i]
		tbl.AddRow([]interface{}{
			tr.Name, tr.Event.Chrom, tr.Event.Begin, tr.Event.End,
			genotypeString(g), fractions[i],
		})
	}
	os.Stdout.Write(tbl.Render(style))
}

func genotypeString(g genotype.Genotype) string {
	switch {
	case g == genotype.Homozygous:
		return "1/1"
	case g == genotype.Heterozygous:
		return "1/0"
	default:
		return "0/0"
	}
}

func init() {
	genotypeCmd.Flags().Bool("per-event", false, "solve one independent single-track LP per SV instead of the coupled global LP")
	genotypeCmd.Flags().String("batch", "batch0", "batch tag recorded on each emitted BED line")
	RootCmd.AddCommand(genotypeCmd)
}
