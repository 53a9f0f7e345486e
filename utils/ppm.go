package utils

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"pngscan/pngDecoder"
)

// CreatePPM creates name and writes a binary (P6) PPM header to it.
func CreatePPM(name string, width, height, maxVal int) (*os.File, error) {
	file, err := os.Create(name)
	if err != nil {
		return nil, err
	}
	_, err = fmt.Fprintf(file, "P6\n%d %d\n%d\n", width, height, maxVal)
	if err != nil {
		file.Close()
		return nil, err
	}

	return file, nil
}

// WritePPM writes the pixels of a decoded grid as binary PPM samples, with no
// header. Alpha is dropped. 16-bit samples are written big-endian, as PPM
// requires when the max value is above 255.
func WritePPM(w io.Writer, grid pngDecoder.PixelGrid, bitDepth uint8) error {
	bw := bufio.NewWriter(w)
	for _, row := range grid {
		for _, px := range row {
			for _, sample := range [3]uint16{px.Red, px.Green, px.Blue} {
				if bitDepth == 16 {
					bw.WriteByte(byte(sample >> 8))
				}
				bw.WriteByte(byte(sample))
			}
		}
	}
	return bw.Flush()
}

// SavePPM writes a decoded image to name as a PPM file.
func SavePPM(name string, grid pngDecoder.PixelGrid, bitDepth uint8) error {
	maxVal := 255
	if bitDepth == 16 {
		maxVal = 65535
	}
	file, err := CreatePPM(name, grid.Width(), grid.Height(), maxVal)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := WritePPM(file, grid, bitDepth); err != nil {
		return err
	}
	return file.Close()
}
