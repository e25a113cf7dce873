package mesh

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrNoGeometry is returned when an OBJ source holds no faces.
var ErrNoGeometry = errors.New("mesh: no geometry")

// LoadOBJFile reads a Wavefront OBJ file from disk.
func LoadOBJFile(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open model: %w", err)
	}
	defer f.Close()

	model, err := LoadOBJ(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	model.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return model, nil
}

// LoadOBJ parses positions and faces from Wavefront OBJ text. Each "o" or
// "g" statement starts a new mesh; polygons are fan-triangulated.
// Texture coordinates, normals and materials are ignored.
func LoadOBJ(r io.Reader) (*Model, error) {
	var (
		positions []mgl64.Vec3
		model     = &Model{}
		current   *objMesh
	)
	flush := func() {
		if current != nil && len(current.mesh.Indices) > 0 {
			model.Meshes = append(model.Meshes, current.mesh)
		}
		current = nil
	}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			v, err := parseVertex(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			positions = append(positions, v)
		case "o", "g":
			flush()
			if model.Name == "" && len(fields) > 1 {
				model.Name = fields[1]
			}
		case "f":
			if current == nil {
				current = newObjMesh()
			}
			if err := current.addFace(fields[1:], positions); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read OBJ: %w", err)
	}
	flush()

	if len(model.Meshes) == 0 {
		return nil, ErrNoGeometry
	}
	return model, nil
}

// objMesh remaps file-global vertex indices into one mesh.
type objMesh struct {
	mesh  *Mesh
	remap map[int]uint32
}

func newObjMesh() *objMesh {
	return &objMesh{mesh: &Mesh{}, remap: make(map[int]uint32)}
}

func (o *objMesh) addFace(refs []string, positions []mgl64.Vec3) error {
	if len(refs) < 3 {
		return fmt.Errorf("face needs at least 3 vertices, got %d", len(refs))
	}
	local := make([]uint32, len(refs))
	for i, ref := range refs {
		idx, err := resolveIndex(ref, len(positions))
		if err != nil {
			return err
		}
		li, ok := o.remap[idx]
		if !ok {
			li = uint32(len(o.mesh.Vertices))
			o.mesh.Vertices = append(o.mesh.Vertices, positions[idx])
			o.remap[idx] = li
		}
		local[i] = li
	}
	for i := 1; i+1 < len(local); i++ {
		o.mesh.Indices = append(o.mesh.Indices, local[0], local[i], local[i+1])
	}
	return nil
}

func parseVertex(fields []string) (mgl64.Vec3, error) {
	if len(fields) < 3 {
		return mgl64.Vec3{}, fmt.Errorf("vertex needs 3 coordinates, got %d", len(fields))
	}
	var v mgl64.Vec3
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return mgl64.Vec3{}, fmt.Errorf("invalid vertex coordinate %q: %w", fields[i], err)
		}
		v[i] = f
	}
	return v, nil
}

// resolveIndex converts a 1-based or negative OBJ reference to a 0-based index.
func resolveIndex(ref string, count int) (int, error) {
	head, _, _ := strings.Cut(ref, "/")
	n, err := strconv.Atoi(head)
	if err != nil {
		return 0, fmt.Errorf("invalid face index %q: %w", ref, err)
	}
	idx := n - 1
	if n < 0 {
		idx = count + n
	}
	if n == 0 || idx < 0 || idx >= count {
		return 0, fmt.Errorf("face index %d out of range (have %d vertices)", n, count)
	}
	return idx, nil
}
