package flux

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/wildstyl3r/epacs/internal/constants"
	"github.com/wildstyl3r/epacs/internal/utils"
)

var (
	ErrBadMagic       = errors.New("invalid grid magic number")
	ErrVersionTooLong = errors.New("grid version tag too long")
)

// versionSize is the on-disk version field, NUL terminated.
const versionSize = 10

// Header describes the beams and virtuality cuts a flux grid was built for.
type Header struct {
	Version     string
	Eb1, Eb2    float64 // beam energies [GeV]
	Q2Max1      float64 // [GeV^2]
	Q2Max2      float64 // [GeV^2]
	Fragmenting bool
	PartonPdgId int
}

// Grid is a one dimensional photon flux table f(W) in the CepGen binary layout.
type Grid struct {
	Header
	W    []float64
	Flux []float64
}

// on-disk layout, little endian, C struct alignment
type rawHeader struct {
	Magic       uint32
	Version     [versionSize]byte
	_           [2]byte
	Eb1, Eb2    float64
	Q2Max1      float64
	Q2Max2      float64
	Fragmenting bool
	_           [3]byte
	PartonPdgId int32
}

type rawValue struct {
	W, Flux float64
}

func ReadGrid(r io.Reader) (*Grid, error) {
	var raw rawHeader
	if err := binary.Read(r, binary.LittleEndian, &raw); err != nil {
		return nil, fmt.Errorf("reading grid header: %w", err)
	}
	if raw.Magic != constants.GridMagic {
		return nil, fmt.Errorf("%w: 0x%x", ErrBadMagic, raw.Magic)
	}
	g := &Grid{Header: Header{
		Version:     string(bytes.TrimRight(raw.Version[:], "\x00")),
		Eb1:         raw.Eb1,
		Eb2:         raw.Eb2,
		Q2Max1:      raw.Q2Max1,
		Q2Max2:      raw.Q2Max2,
		Fragmenting: raw.Fragmenting,
		PartonPdgId: int(raw.PartonPdgId),
	}}
	for {
		var v rawValue
		err := binary.Read(r, binary.LittleEndian, &v)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading grid node %d: %w", len(g.W), err)
		}
		g.W = append(g.W, v.W)
		g.Flux = append(g.Flux, v.Flux)
	}
	return g, nil
}

func LoadGrid(path string) (*Grid, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening grid: %w", err)
	}
	defer file.Close()
	g, err := ReadGrid(bufio.NewReader(file))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

func (g *Grid) check() error {
	if len(g.W) != len(g.Flux) {
		return fmt.Errorf("grid has %d nodes and %d flux values", len(g.W), len(g.Flux))
	}
	if len(g.Version) >= versionSize {
		return fmt.Errorf("%w: %q has %d bytes, at most %d fit", ErrVersionTooLong, g.Version, len(g.Version), versionSize-1)
	}
	return nil
}

func (g *Grid) Write(w io.Writer) error {
	if err := g.check(); err != nil {
		return err
	}
	raw := rawHeader{
		Magic:       constants.GridMagic,
		Eb1:         g.Eb1,
		Eb2:         g.Eb2,
		Q2Max1:      g.Q2Max1,
		Q2Max2:      g.Q2Max2,
		Fragmenting: g.Fragmenting,
		PartonPdgId: int32(g.PartonPdgId),
	}
	copy(raw.Version[:], g.Version)
	if err := binary.Write(w, binary.LittleEndian, &raw); err != nil {
		return err
	}
	for i := range g.W {
		if err := binary.Write(w, binary.LittleEndian, rawValue{g.W[i], g.Flux[i]}); err != nil {
			return err
		}
	}
	return nil
}

func (g *Grid) Save(path string) error {
	if err := g.check(); err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	buffered := bufio.NewWriter(file)
	if err := g.Write(buffered); err != nil {
		file.Close()
		return err
	}
	if err := buffered.Flush(); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// At interpolates the flux linearly between grid nodes; it is 0 outside the grid.
func (g *Grid) At(w float64) float64 {
	return utils.LinearInterpolate(g.W, g.Flux, w)
}

func (g *Grid) Range() (float64, float64) {
	if len(g.W) == 0 {
		return 0, 0
	}
	return g.W[0], g.W[len(g.W)-1]
}
