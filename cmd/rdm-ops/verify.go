// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/turath/rdm-ops/internal/rdmclient"
	"github.com/turath/rdm-ops/internal/verify"
	"github.com/turath/rdm-ops/pkg/types"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify stored file integrity against REST metadata",
	Long: `Verify compares what the platform API reports about a file (size,
checksum, Content-Length) with the bytes actually retrievable, either
through the REST content endpoint or straight from the S3 backend.
Mismatches exit with status 2. Every run is recorded in a local SQLite
ledger; see verify history.`,
}

var verifyFileCmd = &cobra.Command{
	Use:   "file",
	Short: "Download a record file via REST and verify its metadata",
	RunE:  runVerifyFile,
}

var verifyObjectCmd = &cobra.Command{
	Use:   "object",
	Short: "Stream an object from the S3 backend and verify its metadata",
	RunE:  runVerifyObject,
}

var verifyHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent verification runs",
	RunE:  runVerifyHistory,
}

func init() {
	verifyFileCmd.Flags().String("pid", "", "record PID (required)")
	verifyFileCmd.Flags().String("filename", "", "specific filename to verify (default: first file)")
	verifyFileCmd.MarkFlagRequired("pid")

	verifyObjectCmd.Flags().String("bucket", "", "bucket id (resolved from --pid when omitted)")
	verifyObjectCmd.Flags().String("key", "", "object key (resolved from --pid when omitted)")
	verifyObjectCmd.Flags().String("pid", "", "record PID for metadata comparison and bucket resolution")
	verifyObjectCmd.Flags().String("filename", "", "specific filename when resolving via --pid")

	verifyHistoryCmd.Flags().Int("limit", 20, "maximum number of runs to list")
	verifyHistoryCmd.Flags().Bool("json", false, "output runs as JSON")

	verifyCmd.AddCommand(verifyFileCmd)
	verifyCmd.AddCommand(verifyObjectCmd)
	verifyCmd.AddCommand(verifyHistoryCmd)
	rootCmd.AddCommand(verifyCmd)
}

func ledgerPath() string {
	if p := viper.GetString("verify.ledger_path"); p != "" {
		return p
	}
	return verify.DefaultLedgerPath
}

// recordRun appends a run to the ledger. Ledger trouble must not mask the
// verification outcome, so failures only warn.
func recordRun(ctx context.Context, run types.VerifyRun) {
	ledger, err := verify.OpenLedger(ledgerPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: opening ledger: %v\n", err)
		return
	}
	defer ledger.Close()

	if _, err := ledger.Record(ctx, run); err != nil {
		fmt.Fprintf(os.Stderr, "warning: recording run: %v\n", err)
	}
}

func printComparison(cmp types.Comparison, local types.Digested) {
	fmt.Printf("local_size: %d\n", local.Size)
	fmt.Printf("local_sha256: %s\n", local.SHA256)
	fmt.Printf("size_match: %v\n", cmp.SizeMatch)
	fmt.Printf("content_length_match: %v\n", cmp.ContentLengthMatch)
	if cmp.ChecksumChecked {
		fmt.Printf("checksum_match: %v\n", cmp.ChecksumMatch)
	} else {
		fmt.Println("checksum_match: (no comparable checksum)")
	}
}

func runVerifyFile(cmd *cobra.Command, args []string) error {
	pid, _ := cmd.Flags().GetString("pid")
	filename, _ := cmd.Flags().GetString("filename")

	ctx := context.Background()
	client := rdmclient.New(clientConfig(cmd))

	entries, err := client.ListFiles(ctx, pid)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "record %s has %d file(s)\n", pid, len(entries))

	entry, err := rdmclient.SelectFile(entries, filename)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "selected %s (rest checksum: %s)\n", entry.Key, entry.BestChecksum())

	contentLength, err := client.HeadFileContent(ctx, pid, entry.Key)
	if err != nil {
		return err
	}

	rc, err := client.OpenFileContent(ctx, pid, entry.Key)
	if err != nil {
		return err
	}
	local, err := verify.Digest(rc)
	rc.Close()
	if err != nil {
		return err
	}

	cmp := verify.Compare(entry.Size, entry.BestChecksum(), contentLength, local)
	printComparison(cmp, local)

	run := types.VerifyRun{
		Timestamp:    time.Now().UTC(),
		Source:       "rest",
		PID:          pid,
		Key:          entry.Key,
		RestSize:     entry.Size,
		RestChecksum: entry.BestChecksum(),
		LocalSize:    local.Size,
		LocalSHA256:  local.SHA256,
		LocalMD5:     local.MD5,
		Matched:      !cmp.Failed,
	}
	recordRun(ctx, run)

	if cmp.Failed {
		fmt.Fprintln(os.Stderr, "verification failed: stored bytes do not match REST metadata")
		os.Exit(2)
	}
	fmt.Println("verification ok")
	return nil
}

func runVerifyObject(cmd *cobra.Command, args []string) error {
	bucket, _ := cmd.Flags().GetString("bucket")
	key, _ := cmd.Flags().GetString("key")
	pid, _ := cmd.Flags().GetString("pid")
	filename, _ := cmd.Flags().GetString("filename")

	ctx := context.Background()

	var entry types.FileEntry
	if pid != "" {
		client := rdmclient.New(clientConfig(cmd))
		entries, err := client.ListFiles(ctx, pid)
		if err != nil {
			return err
		}
		entry, err = rdmclient.SelectFile(entries, filename)
		if err != nil {
			return err
		}
		if bucket == "" || key == "" {
			record, _ := client.GetRecord(ctx, pid)
			bucket, key, err = rdmclient.ResolveBucketAndKey(entry, record)
			if err != nil {
				return err
			}
		}
	}
	if bucket == "" || key == "" {
		return fmt.Errorf("bucket and key required: pass --bucket/--key or --pid")
	}

	verifier, err := verify.NewS3Verifier(ctx, storageConfig())
	if err != nil {
		return err
	}

	storedSize, err := verifier.StatObject(ctx, bucket, key)
	if err != nil {
		return err
	}
	local, err := verifier.StreamObject(ctx, bucket, key)
	if err != nil {
		return err
	}

	cmp := verify.Compare(entry.Size, entry.BestChecksum(), storedSize, local)
	printComparison(cmp, local)

	run := types.VerifyRun{
		Timestamp:    time.Now().UTC(),
		Source:       "s3",
		PID:          pid,
		Bucket:       bucket,
		Key:          key,
		RestSize:     entry.Size,
		RestChecksum: entry.BestChecksum(),
		LocalSize:    local.Size,
		LocalSHA256:  local.SHA256,
		LocalMD5:     local.MD5,
		Matched:      !cmp.Failed,
	}
	recordRun(ctx, run)

	if cmp.Failed {
		fmt.Fprintln(os.Stderr, "verification failed: stored bytes do not match metadata")
		os.Exit(2)
	}
	fmt.Println("verification ok")
	return nil
}

func runVerifyHistory(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")

	ledger, err := verify.OpenLedger(ledgerPath())
	if err != nil {
		return err
	}
	defer ledger.Close()

	runs, err := ledger.History(context.Background(), limit)
	if err != nil {
		return err
	}

	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}

	if len(runs) == 0 {
		fmt.Println("No verification runs recorded.")
		return nil
	}

	fmt.Printf("%-20s  %-6s  %-14s  %-30s  %-10s  %s\n",
		"Time", "Source", "PID", "Key", "Size", "Matched")
	for _, r := range runs {
		fmt.Printf("%-20s  %-6s  %-14s  %-30s  %-10d  %v\n",
			r.Timestamp.Format("2006-01-02 15:04:05"), r.Source, r.PID, r.Key, r.LocalSize, r.Matched)
	}
	return nil
}
