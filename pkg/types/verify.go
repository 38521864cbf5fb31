// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// FileEntry is one file record from the platform files API.
type FileEntry struct {
	// Key is the filename within the record.
	Key string `json:"key"`

	// Size is the REST-reported byte size; nil when the API omits it.
	Size *int64 `json:"size,omitempty"`

	// Checksum is the platform checksum, usually "md5:<hex>".
	Checksum string `json:"checksum,omitempty"`

	// XChecksums carries extended checksums keyed by algorithm
	// (e.g. "sha256").
	XChecksums map[string]string `json:"xchecksums,omitempty"`

	// BucketID identifies the storage bucket holding the file, when the
	// API exposes it.
	BucketID string `json:"bucket_id,omitempty"`

	MimeType string `json:"mimetype,omitempty"`
}

// BestChecksum returns the strongest checksum the entry carries: the
// sha256 from XChecksums when present, otherwise the plain Checksum field.
func (e FileEntry) BestChecksum() string {
	if v, ok := e.XChecksums["sha256"]; ok && v != "" {
		return v
	}
	return e.Checksum
}

// Digested holds locally computed content digests.
type Digested struct {
	Size   int64  `json:"size" yaml:"size"`
	SHA256 string `json:"sha256" yaml:"sha256"`
	MD5    string `json:"md5" yaml:"md5"`
}

// Comparison is the outcome of reconciling REST-reported metadata against
// locally computed digests. Absent metadata never counts as a mismatch.
type Comparison struct {
	SizeMatch          bool `json:"size_match" yaml:"size_match"`
	ContentLengthMatch bool `json:"content_length_match" yaml:"content_length_match"`
	ChecksumMatch      bool `json:"checksum_match" yaml:"checksum_match"`

	// ChecksumChecked reports whether a REST checksum was available to
	// compare at all.
	ChecksumChecked bool `json:"checksum_checked" yaml:"checksum_checked"`

	// Failed is true when any present metadata contradicts the local
	// digests. Verification commands exit 2 when set.
	Failed bool `json:"failed" yaml:"failed"`
}

// VerifyRun is one recorded verification, as stored in the ledger.
type VerifyRun struct {
	ID        int64     `json:"id" yaml:"id"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`

	// Source is "rest" for API downloads or "s3" for storage-level reads.
	Source string `json:"source" yaml:"source"`

	PID    string `json:"pid,omitempty" yaml:"pid,omitempty"`
	Bucket string `json:"bucket,omitempty" yaml:"bucket,omitempty"`
	Key    string `json:"key" yaml:"key"`

	RestSize     *int64 `json:"rest_size,omitempty" yaml:"rest_size,omitempty"`
	RestChecksum string `json:"rest_checksum,omitempty" yaml:"rest_checksum,omitempty"`

	LocalSize   int64  `json:"local_size" yaml:"local_size"`
	LocalSHA256 string `json:"local_sha256" yaml:"local_sha256"`
	LocalMD5    string `json:"local_md5" yaml:"local_md5"`

	Matched bool `json:"matched" yaml:"matched"`
}
