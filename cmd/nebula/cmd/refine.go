package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shenwei356/nebula/internal/bedio"
	"github.com/shenwei356/nebula/internal/breakpoint"
	"github.com/shenwei356/nebula/internal/genome"
	"github.com/shenwei356/nebula/internal/sv"
)

var refineCmd = &cobra.Command{
	Use:   "refine <reference.fa> <catalog.DEL.bed|catalog.INV.bed>",
	Short: "grid-search candidate SV breakpoints against a source-sample index",
	Long: `refine enumerates the (2R+1)^2 offset grid around each candidate
SV's endpoints and retains the offsets whose variant-signature k-mers
are all supported by the source-sample count provider (spec.md §4.4).`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		log := loggerFor("refine", cmd)
		cfg := configFromFlags(cmd)
		checkError(cfg.Validate())

		refPath, err := requireFile(args[0])
		checkError(err)
		ref, err := genome.Open(refPath)
		checkError(err)
		defer ref.Close()

		bedPath, err := requireFile(args[1])
		checkError(err)
		tracks, err := bedio.ReadCatalog(bedPath, func(line int, reason string) {
			log.Warningf("catalog line %d: %s", line, reason)
		})
		checkError(err)

		sourceIndex, err := cmd.Flags().GetString("source-index")
		checkError(err)
		sp, err := loadProvider(cfg, expandPath(sourceIndex))
		checkError(err)
		defer sp.close()

		for _, tr := range tracks {
			if !ref.HasChrom(tr.Event.Chrom) {
				log.Track(tr.Name, "unknown chromosome %q, skipping", tr.Event.Chrom)
				continue
			}
			padded, err := sv.Sequence(ref, tr.Event, cfg.Radius, cfg.K)
			if err != nil {
				log.Track(tr.Name, "%v", err)
				continue
			}
			front := breakpoint.Refine(padded, sp, false, nil)
			fmt.Printf("%s\t%d\n", tr.Name, front.Count())
		}
	},
}

func init() {
	refineCmd.Flags().String("source-index", "", "source-sample k-mer index (flat mmap file, or JSON map under --simulation)")
	refineCmd.MarkFlagRequired("source-index")
	RootCmd.AddCommand(refineCmd)
}
