// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package verify reconciles REST-reported file metadata against bytes
// actually stored, and keeps a local ledger of verification runs.
package verify

import (
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/turath/rdm-ops/pkg/types"
)

// Digest streams r to completion and returns its size, sha256 and md5.
// The platform reports md5 checksums by default and sha256 through
// extended checksums, so both are computed in one pass.
func Digest(r io.Reader) (types.Digested, error) {
	sha := sha256.New()
	sum := md5.New()

	n, err := io.Copy(io.MultiWriter(sha, sum), r)
	if err != nil {
		return types.Digested{}, fmt.Errorf("reading content: %w", err)
	}

	return types.Digested{
		Size:   n,
		SHA256: hex.EncodeToString(sha.Sum(nil)),
		MD5:    hex.EncodeToString(sum.Sum(nil)),
	}, nil
}

// checksumMatches compares a REST-reported checksum against local digests.
// Recognized forms: "md5:<hex>", "sha256:<hex>", or a bare hex string of
// sha256 length. The second return reports whether a comparison was
// possible at all.
func checksumMatches(restChecksum string, local types.Digested) (match, checked bool) {
	c := strings.TrimSpace(restChecksum)
	switch {
	case c == "":
		return false, false
	case strings.HasPrefix(c, "md5:"):
		return strings.EqualFold(strings.TrimPrefix(c, "md5:"), local.MD5), true
	case strings.HasPrefix(c, "sha256:"):
		return strings.EqualFold(strings.TrimPrefix(c, "sha256:"), local.SHA256), true
	case len(c) >= 64:
		return strings.EqualFold(c, local.SHA256), true
	default:
		return false, false
	}
}

// Compare reconciles REST metadata and the HEAD Content-Length against a
// local digest. Absent metadata (nil size, negative content length, no
// usable checksum) never counts as a mismatch; Failed is set only when
// present metadata contradicts the local bytes.
func Compare(restSize *int64, restChecksum string, contentLength int64, local types.Digested) types.Comparison {
	cmp := types.Comparison{
		SizeMatch:          restSize == nil || *restSize == local.Size,
		ContentLengthMatch: contentLength < 0 || contentLength == local.Size,
	}
	cmp.ChecksumMatch, cmp.ChecksumChecked = checksumMatches(restChecksum, local)

	cmp.Failed = (restSize != nil && !cmp.SizeMatch) ||
		(contentLength >= 0 && !cmp.ContentLengthMatch) ||
		(cmp.ChecksumChecked && !cmp.ChecksumMatch)

	return cmp
}
