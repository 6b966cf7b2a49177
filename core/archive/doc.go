// Package archive provides read access to the expansion pack, a zip
// container of compressed assets opened once at startup.
//
// Entries are decompressed with klauspost/compress and the most recently
// read ones are cached in an LRU, so repeated compressed loads of the same
// location do not inflate it again.
//
// # Usage
//
//	p, err := archive.Open(archive.Config{Path: "main.obb", EntryCacheSize: 64})
//	if err != nil {
//	    return err
//	}
//	defer p.Close()
//	data, err := p.ReadFile("textures/grass.png")
package archive
