// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package verify

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turath/rdm-ops/pkg/types"
)

// Known digests for the string "hello world".
const (
	helloSHA256 = "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"
	helloMD5    = "5eb63bbbe01eeed093cb22bb8f5acdc3"
)

func int64p(v int64) *int64 { return &v }

func TestDigest(t *testing.T) {
	d, err := Digest(strings.NewReader("hello world"))
	require.NoError(t, err)

	assert.Equal(t, int64(11), d.Size)
	assert.Equal(t, helloSHA256, d.SHA256)
	assert.Equal(t, helloMD5, d.MD5)
}

func TestDigestEmpty(t *testing.T) {
	d, err := Digest(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, int64(0), d.Size)
}

func TestCompare(t *testing.T) {
	local := types.Digested{Size: 11, SHA256: helloSHA256, MD5: helloMD5}

	tests := []struct {
		name          string
		restSize      *int64
		restChecksum  string
		contentLength int64
		want          types.Comparison
	}{
		{
			name:          "all metadata matches",
			restSize:      int64p(11),
			restChecksum:  helloSHA256,
			contentLength: 11,
			want: types.Comparison{
				SizeMatch: true, ContentLengthMatch: true,
				ChecksumMatch: true, ChecksumChecked: true,
			},
		},
		{
			name:          "absent metadata never fails",
			restSize:      nil,
			restChecksum:  "",
			contentLength: -1,
			want: types.Comparison{
				SizeMatch: true, ContentLengthMatch: true,
			},
		},
		{
			name:          "size mismatch fails",
			restSize:      int64p(12),
			contentLength: -1,
			want: types.Comparison{
				SizeMatch: false, ContentLengthMatch: true, Failed: true,
			},
		},
		{
			name:          "content length mismatch fails",
			contentLength: 99,
			want: types.Comparison{
				SizeMatch: true, ContentLengthMatch: false, Failed: true,
			},
		},
		{
			name:          "md5 prefixed checksum matches",
			restChecksum:  "md5:" + helloMD5,
			contentLength: -1,
			want: types.Comparison{
				SizeMatch: true, ContentLengthMatch: true,
				ChecksumMatch: true, ChecksumChecked: true,
			},
		},
		{
			name:          "sha256 prefixed checksum matches",
			restChecksum:  "sha256:" + strings.ToUpper(helloSHA256),
			contentLength: -1,
			want: types.Comparison{
				SizeMatch: true, ContentLengthMatch: true,
				ChecksumMatch: true, ChecksumChecked: true,
			},
		},
		{
			name:          "checksum mismatch fails",
			restChecksum:  "md5:00000000000000000000000000000000",
			contentLength: -1,
			want: types.Comparison{
				SizeMatch: true, ContentLengthMatch: true,
				ChecksumChecked: true, Failed: true,
			},
		},
		{
			name:          "short unprefixed checksum is not checked",
			restChecksum:  helloMD5,
			contentLength: -1,
			want: types.Comparison{
				SizeMatch: true, ContentLengthMatch: true,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compare(tt.restSize, tt.restChecksum, tt.contentLength, local)
			assert.Equal(t, tt.want, got)
		})
	}
}
