package chunk

import (
	"archive/zip"
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"

	"skard/pkg/value"
)

// ImageVersion is bumped whenever the archive layout changes.
const ImageVersion = 1

// imageConstant is the JSON form of a pool entry. Reals travel as their bit
// pattern so NaN and infinities survive.
type imageConstant struct {
	Type string `json:"type"`
	Bits uint64 `json:"bits,omitempty"`
	Int  int64  `json:"int,omitempty"`
}

// imageHeader is the JSON-serializable part of a chunk image.
type imageHeader struct {
	Version   int             `json:"version"`
	CodeSize  int             `json:"code_size"`
	Constants []imageConstant `json:"constants"`
	Lines     []LineRun       `json:"lines"`
}

// Marshal serialises the chunk into an in-memory ZIP archive:
//
//	chunk.json   header, constant pool and line runs
//	code.bin     instruction bytes
//	columns.bin  one little-endian uint32 per instruction byte
func (c *Chunk) Marshal() ([]byte, error) {
	buf := new(bytes.Buffer)
	zw := zip.NewWriter(buf)

	header := imageHeader{
		Version:   ImageVersion,
		CodeSize:  len(c.Code),
		Constants: make([]imageConstant, 0, len(c.Constants)),
		Lines:     c.Debug.Runs(),
	}
	for _, v := range c.Constants {
		ic := imageConstant{Type: v.Type.String()}
		switch v.Type {
		case value.TypeReal:
			ic.Bits = math.Float64bits(v.AsReal())
		case value.TypeInt:
			ic.Int = v.AsInt()
		default:
			return nil, fmt.Errorf("constant of type %s cannot be stored", v.Type)
		}
		header.Constants = append(header.Constants, ic)
	}

	jsonData, err := json.MarshalIndent(header, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal chunk header: %w", err)
	}
	if err := writeZipEntry(zw, "chunk.json", jsonData); err != nil {
		return nil, err
	}
	if err := writeZipEntry(zw, "code.bin", c.Code); err != nil {
		return nil, err
	}
	if err := writeZipEntry(zw, "columns.bin", intsToLE(c.Debug.columns)); err != nil {
		return nil, err
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close zip: %w", err)
	}
	return buf.Bytes(), nil
}

// Unmarshal rebuilds a chunk from an archive produced by Marshal.
func Unmarshal(data []byte) (*Chunk, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open zip: %w", err)
	}

	fileMap := make(map[string]*zip.File, len(r.File))
	for _, f := range r.File {
		fileMap[f.Name] = f
	}

	jsonData, err := readZipEntry(fileMap, "chunk.json")
	if err != nil {
		return nil, err
	}
	var header imageHeader
	if err := json.Unmarshal(jsonData, &header); err != nil {
		return nil, fmt.Errorf("unmarshal chunk header: %w", err)
	}
	if header.Version != ImageVersion {
		return nil, fmt.Errorf("unsupported chunk image version %d", header.Version)
	}

	code, err := readZipEntry(fileMap, "code.bin")
	if err != nil {
		return nil, err
	}
	if len(code) != header.CodeSize {
		return nil, fmt.Errorf("code.bin holds %d bytes; header says %d", len(code), header.CodeSize)
	}
	rawColumns, err := readZipEntry(fileMap, "columns.bin")
	if err != nil {
		return nil, err
	}
	columns := leToInts(rawColumns)
	if len(columns) != len(code) {
		return nil, fmt.Errorf("columns.bin describes %d bytes; code has %d", len(columns), len(code))
	}
	covered := 0
	for _, run := range header.Lines {
		covered += run.Count
	}
	if covered != len(code) {
		return nil, fmt.Errorf("line table describes %d bytes; code has %d", covered, len(code))
	}
	if len(header.Constants) > MaxConstants {
		return nil, fmt.Errorf("image holds %d constants; limit is %d", len(header.Constants), MaxConstants)
	}

	c := New()
	c.Code = code
	c.Debug.runs = header.Lines
	c.Debug.columns = columns
	for i, ic := range header.Constants {
		switch ic.Type {
		case value.TypeReal.String():
			c.Constants = append(c.Constants, value.Real(math.Float64frombits(ic.Bits)))
		case value.TypeInt.String():
			c.Constants = append(c.Constants, value.Int(ic.Int))
		default:
			return nil, fmt.Errorf("constant %d: unknown type %q", i, ic.Type)
		}
	}
	return c, nil
}

// SaveFile writes the chunk image to the given file path.
func (c *Chunk) SaveFile(path string) error {
	data, err := c.Marshal()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadFile reads a chunk image from the given file path.
func LoadFile(path string) (*Chunk, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Unmarshal(data)
}

func writeZipEntry(zw *zip.Writer, name string, data []byte) error {
	w, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("create zip entry %q: %w", name, err)
	}
	_, err = w.Write(data)
	return err
}

func readZipEntry(fileMap map[string]*zip.File, name string) ([]byte, error) {
	f, ok := fileMap[name]
	if !ok {
		return nil, fmt.Errorf("zip entry %q not found", name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open zip entry %q: %w", name, err)
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func intsToLE(src []int) []byte {
	out := make([]byte, len(src)*4)
	for i, v := range src {
		binary.LittleEndian.PutUint32(out[i*4:], uint32(v))
	}
	return out
}

func leToInts(src []byte) []int {
	out := make([]int, len(src)/4)
	for i := range out {
		out[i] = int(binary.LittleEndian.Uint32(src[i*4:]))
	}
	return out
}
