package dupescan

import (
	"crypto/md5" //nolint:gosec // Content equality, not tamper resistance
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// ChunkSize is the read block size during hashing, bounding peak memory
// regardless of file size.
const ChunkSize = 8192

// Digest is the fixed-width content digest used for duplicate detection.
// Equal digests on equal-size files are treated as content equality.
type Digest [md5.Size]byte

// Hex returns the lowercase hexadecimal form of the digest.
func (d Digest) Hex() string {
	return hex.EncodeToString(d[:])
}

// Short returns the first eight hex characters, used in report headings.
func (d Digest) Short() string {
	return d.Hex()[:8]
}

// ReadError reports a file that could not be opened or read while hashing.
// The file is excluded from duplicate consideration; it is unknown, not
// unique.
type ReadError struct {
	// Path is the file that failed.
	Path string
	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *ReadError) Error() string {
	return fmt.Sprintf("reading %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ReadError) Unwrap() error {
	return e.Err
}

// HashFile computes the content digest of the file at path, reading
// sequentially in ChunkSize blocks and feeding each block into an
// incremental accumulator. Any failure to open or read returns a *ReadError;
// there is no retry.
func HashFile(path string) (Digest, error) {
	var digest Digest

	file, err := os.Open(path)
	if err != nil {
		return digest, &ReadError{Path: path, Err: err}
	}
	defer file.Close()

	hasher := md5.New() //nolint:gosec // Content equality, not tamper resistance
	buffer := make([]byte, ChunkSize)

	for {
		n, err := file.Read(buffer)
		if n > 0 {
			if _, werr := hasher.Write(buffer[:n]); werr != nil {
				return digest, &ReadError{Path: path, Err: werr}
			}
		}

		if err == io.EOF {
			break
		}

		if err != nil {
			return digest, &ReadError{Path: path, Err: err}
		}
	}

	copy(digest[:], hasher.Sum(nil))

	return digest, nil
}
