package install

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"image/png"
	"io"

	"golang.org/x/image/draw"
)

// IcoSizes are the image sizes stored in folder.ico, largest first.
var IcoSizes = []int{256, 48, 32, 16}

const (
	icoHeaderLen = 6
	icoEntryLen  = 16
)

// EncodeICO writes img as an ICO container holding one PNG compressed
// image per size. Sizes above 256 pixels are not representable.
func EncodeICO(w io.Writer, img image.Image, sizes []int) error {
	if len(sizes) == 0 {
		return fmt.Errorf("no icon sizes")
	}

	images := make([][]byte, 0, len(sizes))
	for _, s := range sizes {
		if s <= 0 || s > 256 {
			return fmt.Errorf("invalid icon size %d", s)
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, scale(img, s)); err != nil {
			return err
		}
		images = append(images, buf.Bytes())
	}

	buf := new(bytes.Buffer)

	// ICONDIR header: reserved, type (1 = icon), image count.
	_ = binary.Write(buf, binary.LittleEndian, uint16(0))
	_ = binary.Write(buf, binary.LittleEndian, uint16(1))
	_ = binary.Write(buf, binary.LittleEndian, uint16(len(sizes)))

	offset := icoHeaderLen + icoEntryLen*len(sizes)
	for i, s := range sizes {
		// ICO format uses 0 for 256px.
		dim := byte(s)
		if s >= 256 {
			dim = 0
		}
		buf.WriteByte(dim)
		buf.WriteByte(dim)
		buf.WriteByte(0) // colour palette
		buf.WriteByte(0) // reserved
		_ = binary.Write(buf, binary.LittleEndian, uint16(1))  // colour planes
		_ = binary.Write(buf, binary.LittleEndian, uint16(32)) // bits per pixel
		_ = binary.Write(buf, binary.LittleEndian, uint32(len(images[i])))
		_ = binary.Write(buf, binary.LittleEndian, uint32(offset))
		offset += len(images[i])
	}
	for _, data := range images {
		buf.Write(data)
	}

	_, err := w.Write(buf.Bytes())
	return err
}

// scale resizes img to a square of the given size.
func scale(img image.Image, size int) image.Image {
	b := img.Bounds()
	if b.Dx() == size && b.Dy() == size {
		return img
	}
	dst := image.NewNRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
