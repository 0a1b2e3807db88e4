package cmd

import (
	"fmt"
	"math/rand"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/moratsam/ltfountain/fountain"
	"github.com/moratsam/ltfountain/session"
)

// defaultChunkSize is a power of two sized well under a typical Ethernet
// MTU, so a framed packet (20-byte header + data) still fits comfortably in
// one unfragmented UDP datagram.
const defaultChunkSize = 1024

var (
	seed        uint32
	chunk_size  uint32
	shard_count int
	packet_cnt  int
	file_in     string
	file_out    string
	out_prefix  string

	s *session.Session

	root_cmd = &cobra.Command{
		Use:   "ltfountain",
		Short: "Encode and decode payloads with a Luby Transform fountain code.",
		Long: `A rateless erasure code: the encoder emits an unbounded stream of
packets, and the decoder reconstructs the original payload from any
sufficiently large subset of them, in any order, without ever asking
the encoder to resend anything.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			s = session.NewSession()
		},
	}

	cmd_encode = &cobra.Command{
		Use:   "encode",
		Short: "Encode a file into LT fountain packet shards.",
		Run: func(cmd *cobra.Command, args []string) {
			check(s.Encode(file_in, resolveSeed(), chunk_size, shard_count, resolvePacketCount(), out_prefix))
		},
	}

	cmd_decode = &cobra.Command{
		Use:   "decode",
		Short: "Decode LT fountain packet shards back into a file.",
		Run: func(cmd *cobra.Command, args []string) {
			shards := viper.GetStringSlice("shards")
			payload_size := viper.GetUint64("payload-size")

			result, err := s.Decode(shards, payload_size, chunk_size, file_out)
			check(err)
			printResult(result)
		},
	}

	cmd_roundtrip = &cobra.Command{
		Use:   "roundtrip",
		Short: "Encode then immediately decode, to demonstrate the codec end to end.",
		Run: func(cmd *cobra.Command, args []string) {
			fi, err := os.Stat(file_in)
			check(err)

			check(s.Encode(file_in, resolveSeed(), chunk_size, shard_count, resolvePacketCount(), out_prefix))

			shards := make([]string, shard_count)
			for i := range shards {
				shards[i] = out_prefix + "_" + strconv.Itoa(i) + ".pkt"
			}

			result, err := s.Decode(shards, uint64(fi.Size()), chunk_size, file_out)
			check(err)
			printResult(result)
		},
	}
)

func printResult(result session.DecodeResult) {
	fmt.Printf("resolved %d/%d chunks from %d packets\n", result.Resolved, result.K, result.Consumed)
	if !result.Complete() {
		fmt.Println("warning: payload is only partially reconstructed")
	}
}

// resolveSeed returns the configured seed, or picks a random one if the
// caller left it at zero. The core itself never does this: it always takes
// a seed as an argument, so the random choice lives here, at the ambient
// CLI layer, keeping the core deterministic and testable.
func resolveSeed() uint32 {
	if seed != 0 {
		return seed
	}
	return rand.Uint32()
}

// resolvePacketCount picks a budget of packets for a demo encode run when
// the caller didn't ask for a specific count: enough that the decoder almost
// certainly has sufficient packets to finish, without being unbounded (the
// core's stream is infinite; a file-backed demo has to stop somewhere).
func resolvePacketCount() int {
	if packet_cnt > 0 {
		return packet_cnt
	}
	fi, err := os.Stat(file_in)
	check(err)
	k := fountain.ChunkCount(int(fi.Size()), chunk_size)
	return k*3 + 64
}

func Execute() error {
	iit()
	return root_cmd.Execute()
}

func iit() {
	root_cmd.AddCommand(cmd_encode, cmd_decode, cmd_roundtrip)

	root_cmd.PersistentFlags().Uint32VarP(&seed, "seed", "", 0, "Top-level encoder seed (0 picks a random seed)")
	root_cmd.PersistentFlags().Uint32VarP(&chunk_size, "chunk-size", "", defaultChunkSize, "Chunk size in bytes; must match between encode and decode")

	// Cmd Encode
	cmd_encode.Flags().StringVarP(&file_in, "input", "i", "", "Input file")
	cmd_encode.Flags().StringVarP(&out_prefix, "output-prefix", "o", "", "Prefix for the generated shard files")
	cmd_encode.Flags().IntVarP(&shard_count, "shards", "", 4, "Number of shard files to round-robin packets across")
	cmd_encode.Flags().IntVarP(&packet_cnt, "packets", "", 0, "Number of packets to emit (0 picks a reasonable default based on payload size)")
	cmd_encode.MarkFlagRequired("input")
	cmd_encode.MarkFlagRequired("output-prefix")

	// Cmd Decode
	cmd_decode.Flags().StringSlice("shards", []string{}, "List of shard file paths")
	cmd_decode.Flags().Uint64P("payload-size", "", 0, "Size in bytes of the original payload")
	cmd_decode.Flags().StringVarP(&file_out, "output", "o", "", "Output file")
	viper.BindPFlag("shards", cmd_decode.Flags().Lookup("shards"))
	viper.BindPFlag("payload-size", cmd_decode.Flags().Lookup("payload-size"))
	cmd_decode.MarkFlagRequired("shards")
	cmd_decode.MarkFlagRequired("payload-size")
	cmd_decode.MarkFlagRequired("output")

	// Cmd Roundtrip
	cmd_roundtrip.Flags().StringVarP(&file_in, "input", "i", "", "Input file")
	cmd_roundtrip.Flags().StringVarP(&file_out, "output", "o", "", "Output file")
	cmd_roundtrip.Flags().StringVarP(&out_prefix, "output-prefix", "", "", "Prefix for the generated shard files")
	cmd_roundtrip.Flags().IntVarP(&shard_count, "shards", "", 4, "Number of shard files to round-robin packets across")
	cmd_roundtrip.Flags().IntVarP(&packet_cnt, "packets", "", 0, "Number of packets to emit (0 picks a reasonable default based on payload size)")
	cmd_roundtrip.MarkFlagRequired("input")
	cmd_roundtrip.MarkFlagRequired("output")
	cmd_roundtrip.MarkFlagRequired("output-prefix")
}

func check(err error) {
	if err != nil {
		panic(err)
	}
}
