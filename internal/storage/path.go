package storage

import (
	"path/filepath"
)

// Directory sharding keeps any single directory from accumulating every
// uploaded blob. Two levels of two hex characters each gives 65536 leaf
// directories, e.g. /data/ab/cd/abcdef...
const (
	shardLevels = 2
	shardWidth  = 2
)

// computePath generates the storage path for a content hash under basePath.
func computePath(basePath, contentHash string) string {
	components := make([]string, 0, shardLevels+2)
	components = append(components, basePath)

	offset := 0
	for i := 0; i < shardLevels; i++ {
		components = append(components, contentHash[offset:offset+shardWidth])
		offset += shardWidth
	}
	components = append(components, contentHash)

	return filepath.Join(components...)
}

// shardDir returns the directory path for a hash without the filename.
func shardDir(basePath, contentHash string) string {
	components := make([]string, 0, shardLevels+1)
	components = append(components, basePath)

	offset := 0
	for i := 0; i < shardLevels; i++ {
		components = append(components, contentHash[offset:offset+shardWidth])
		offset += shardWidth
	}

	return filepath.Join(components...)
}
