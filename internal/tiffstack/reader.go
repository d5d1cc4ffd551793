package tiffstack

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// PageSize is the extent of one page in a stack.
type PageSize struct {
	Width  int
	Height int
}

// PageSizes walks a little-endian TIFF's IFD chain and returns the
// extent of every page in chain order. It reads only the directory
// structure, not the pixel data, so it is cheap even for large
// payloads.
func PageSizes(data []byte) ([]PageSize, error) {
	if len(data) < 8 || data[0] != 'I' || data[1] != 'I' {
		return nil, errors.New("tiffstack: not a little-endian TIFF")
	}
	if binary.LittleEndian.Uint16(data[2:]) != 42 {
		return nil, errors.New("tiffstack: bad magic")
	}

	var sizes []PageSize
	offset := binary.LittleEndian.Uint32(data[4:])
	for offset != 0 {
		if int(offset)+2 > len(data) {
			return nil, fmt.Errorf("tiffstack: IFD offset %d out of range", offset)
		}
		entries := binary.LittleEndian.Uint16(data[offset:])
		end := int(offset) + 2 + int(entries)*12 + 4
		if end > len(data) {
			return nil, fmt.Errorf("tiffstack: truncated IFD at %d", offset)
		}

		var size PageSize
		for i := 0; i < int(entries); i++ {
			entry := data[int(offset)+2+i*12:]
			tag := binary.LittleEndian.Uint16(entry)
			value := entryValue(entry)
			switch tag {
			case tagImageWidth:
				size.Width = int(value)
			case tagImageLength:
				size.Height = int(value)
			}
		}
		sizes = append(sizes, size)
		offset = binary.LittleEndian.Uint32(data[end-4:])
	}
	return sizes, nil
}

// PageCount returns the number of pages chained in the payload.
func PageCount(data []byte) (int, error) {
	sizes, err := PageSizes(data)
	if err != nil {
		return 0, err
	}
	return len(sizes), nil
}

// entryValue reads an inline LONG or single SHORT entry value.
func entryValue(entry []byte) uint32 {
	typ := binary.LittleEndian.Uint16(entry[2:])
	if typ == typeShort {
		return uint32(binary.LittleEndian.Uint16(entry[8:]))
	}
	return binary.LittleEndian.Uint32(entry[8:])
}
