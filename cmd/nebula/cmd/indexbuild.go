package cmd

import (
	"github.com/spf13/cobra"

	"github.com/shenwei356/nebula/internal/fastqio"
	"github.com/shenwei356/nebula/internal/kmer"
	"github.com/shenwei356/nebula/internal/provider"
)

var indexBuildCmd = &cobra.Command{
	Use:   "index-build",
	Short: "build a memory-mappable k-mer count index from FASTA/FASTQ input",
	Long: `index-build counts canonical k-mers across one or more FASTA/FASTQ
files and writes a mmap-ready internal/kmerio flat index, staging
counts in a modernc.org/kv ordered store along the way (spec.md §4.2).`,
	Run: func(cmd *cobra.Command, args []string) {
		log := loggerFor("index-build", cmd)
		cfg := configFromFlags(cmd)
		checkError(cfg.Validate())

		out, err := cmd.Flags().GetString("out")
		checkError(err)
		out = expandPath(out)
		staging, err := cmd.Flags().GetString("staging")
		checkError(err)
		if staging == "" {
			staging = out + ".staging"
		} else {
			staging = expandPath(staging)
		}

		builder, err := provider.NewIndexBuilder(staging, cfg.K)
		checkError(err)

		var total int
		for _, rawPath := range args {
			path, err := requireFile(rawPath)
			checkError(err)
			err = fastqio.Each(path, func(read fastqio.Read) error {
				kmers := kmer.ExtractCanonicalKmers(cfg.K, nil, 0, true, read.Seq)
				for km, n := range kmers {
					for j := 0; j < n; j++ {
						if err := builder.Add(km); err != nil {
							return err
						}
						total++
					}
				}
				return nil
			})
			checkError(err)
			log.Track(path, "indexed")
		}

		checkError(builder.Finalize(out))
		log.Infof("indexed %d k-mer occurrences into %s", total, out)
	},
}

func init() {
	indexBuildCmd.Flags().String("out", "", "output flat index path")
	indexBuildCmd.Flags().String("staging", "", "modernc.org/kv staging store path (default: <out>.staging)")
	indexBuildCmd.MarkFlagRequired("out")
	RootCmd.AddCommand(indexBuildCmd)
}
