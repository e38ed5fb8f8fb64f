/*
 * Altair8K - Batch tokenize/list/dump inspection CLI.
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// basictool is a batch-inspection CLI over a saved Altair 8K BASIC image:
// tokenize a line, list a saved program, or hex-dump an image's regions.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"altair8k/internal/basic"
	"altair8k/internal/hex"
	"altair8k/internal/token"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "basictool",
		Short: "Inspect Altair 8K BASIC tokenized source and saved program images",
	}

	tokenizeCmd := &cobra.Command{
		Use:   "tokenize [source line]",
		Short: "Tokenize one line of BASIC source and print the resulting bytes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := args[0]
			for _, a := range args[1:] {
				src += " " + a
			}
			toks := token.Tokenize(src, 0)
			if toks == nil {
				return fmt.Errorf("tokenize: line too long or malformed")
			}
			for _, b := range toks {
				fmt.Printf("%02x ", b)
			}
			fmt.Println()
			fmt.Println(token.Detokenize(toks))
			return nil
		},
	}

	var listStart, listEnd uint16
	listCmd := &cobra.Command{
		Use:   "list [image-file]",
		Short: "List the program stored in a saved image file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			in := basic.New(basic.DefaultImageSize)
			if err := in.Load(data); err != nil {
				return err
			}
			for _, line := range in.ListProgram(listStart, listEnd) {
				fmt.Println(line)
			}
			return nil
		},
	}
	listCmd.Flags().Uint16Var(&listStart, "start", 0, "First line number to list")
	listCmd.Flags().Uint16Var(&listEnd, "end", 65535, "Last line number to list")

	dumpCmd := &cobra.Command{
		Use:   "dump [image-file]",
		Short: "Hex-dump the program region of a saved image file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			for i := 0; i < len(data); i += 16 {
				end := i + 16
				if end > len(data) {
					end = len(data)
				}
				var addr strings.Builder
				hex.FormatHalf(&addr, false, []uint16{uint16(i)})
				var row strings.Builder
				hex.FormatBytes(&row, true, data[i:end])
				fmt.Printf("%s %s\n", strings.TrimSpace(addr.String()), row.String())
			}
			return nil
		},
	}

	detokenizeCmd := &cobra.Command{
		Use:   "detokenize [hex bytes]",
		Short: "Detokenize a space-separated hex byte stream back to source",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var toks []byte
			for _, a := range args {
				v, err := strconv.ParseUint(a, 16, 8)
				if err != nil {
					return fmt.Errorf("bad hex byte %q: %w", a, err)
				}
				toks = append(toks, byte(v))
			}
			fmt.Println(token.Detokenize(toks))
			return nil
		},
	}

	rootCmd.AddCommand(tokenizeCmd, listCmd, dumpCmd, detokenizeCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
