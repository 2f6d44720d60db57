// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package sceneio

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gazed/pathtrace/internal/geom"
	"github.com/gazed/pathtrace/internal/scene"
)

// TextureLoader resolves a scene file's declared texture path (as it
// appears in the Textures block) to a loaded Texture.
type TextureLoader func(path string) (*scene.Texture, error)

// ParseFile reads and parses the scene file at path, resolving texture
// paths relative to the scene file's own directory and loading them
// through LoadTexture.
func ParseFile(path string) (*scene.Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	dir := filepath.Dir(path)
	return Parse(data, func(texPath string) (*scene.Texture, error) {
		return LoadTexture(filepath.Join(dir, texPath))
	})
}

// Parse parses scene source text into a Scene, resolving any declared
// textures through load.
func Parse(src []byte, load TextureLoader) (*scene.Scene, error) {
	p := &parser{lex: newLexer(src)}
	p.advance()

	sc := &scene.Scene{Camera: scene.DefaultCamera(), SkyColor: geom.Color{X: 1, Y: 1, Z: 1}}
	texturePaths := map[int]string{}

	for p.tok.kind != tEOF {
		if p.tok.kind != tIdent {
			return nil, p.syntaxError("Expected a declaration: Textures, Camera, Plane, Sphere, Triangle, or Parallelogram.")
		}
		switch p.tok.text {
		case "Textures":
			if err := p.parseTextures(texturePaths); err != nil {
				return nil, err
			}
		case "Camera":
			if err := p.parseCamera(sc); err != nil {
				return nil, err
			}
		case "Plane":
			prim, err := p.parsePlane()
			if err != nil {
				return nil, err
			}
			sc.Primitives = append(sc.Primitives, prim)
		case "Sphere":
			prim, err := p.parseSphere()
			if err != nil {
				return nil, err
			}
			sc.Primitives = append(sc.Primitives, prim)
		case "Triangle":
			prim, err := p.parseTriangle()
			if err != nil {
				return nil, err
			}
			sc.Primitives = append(sc.Primitives, prim)
		case "Parallelogram":
			prim, err := p.parseParallelogram()
			if err != nil {
				return nil, err
			}
			sc.Primitives = append(sc.Primitives, prim)
		default:
			return nil, p.syntaxError(fmt.Sprintf("Unknown declaration %q.", p.tok.text))
		}
	}

	if err := resolveTextures(sc, texturePaths, load); err != nil {
		return nil, err
	}
	return sc, nil
}

// resolveTextures loads every declared texture into Scene.Textures at
// slot (declaredIndex-1), matching the 0-based array the source builds -
// Texture lookup later indexes this same slice directly by the 1-based
// TextureIndex without decrementing, which is the source's off-by-one
// (see (*scene.Scene).Texture).
func resolveTextures(sc *scene.Scene, paths map[int]string, load TextureLoader) error {
	if len(paths) == 0 {
		return nil
	}
	max := 0
	for idx := range paths {
		if idx > max {
			max = idx
		}
	}
	sc.Textures = make([]*scene.Texture, max)
	for idx, path := range paths {
		tex, err := load(path)
		if err != nil {
			return &SemanticError{Context: fmt.Sprintf("texture %d (%q): %v", idx, path, err)}
		}
		sc.Textures[idx-1] = tex
	}
	return nil
}

type parser struct {
	lex  *lexer
	tok  token
	prev token
}

func (p *parser) advance() { p.prev, p.tok = p.tok, p.lex.next() }

func (p *parser) syntaxError(context string) error {
	return &SyntaxError{Line: p.tok.line, Col: p.tok.col, Lexeme: p.tok.describe(), Context: context}
}

func (p *parser) expect(k tokenKind, context string) (token, error) {
	if p.tok.kind != k {
		return token{}, p.syntaxError(context)
	}
	t := p.tok
	p.advance()
	return t, nil
}

func (p *parser) parseFloat(context string) (float32, error) {
	neg := false
	if p.tok.kind == tMinus {
		neg = true
		p.advance()
	}
	t, err := p.expect(tNumber, context)
	if err != nil {
		return 0, err
	}
	if neg {
		return -t.num, nil
	}
	return t.num, nil
}

func (p *parser) parseVec2(context string) (geom.Vec2, error) {
	if _, err := p.expect(tLParen, context); err != nil {
		return geom.Vec2{}, err
	}
	x, err := p.parseFloat(context)
	if err != nil {
		return geom.Vec2{}, err
	}
	if _, err := p.expect(tComma, context); err != nil {
		return geom.Vec2{}, err
	}
	y, err := p.parseFloat(context)
	if err != nil {
		return geom.Vec2{}, err
	}
	if _, err := p.expect(tRParen, context); err != nil {
		return geom.Vec2{}, err
	}
	return geom.Vec2{X: x, Y: y}, nil
}

func (p *parser) parseVec3(context string) (geom.Vec3, error) {
	if _, err := p.expect(tLParen, context); err != nil {
		return geom.Vec3{}, err
	}
	x, err := p.parseFloat(context)
	if err != nil {
		return geom.Vec3{}, err
	}
	if _, err := p.expect(tComma, context); err != nil {
		return geom.Vec3{}, err
	}
	y, err := p.parseFloat(context)
	if err != nil {
		return geom.Vec3{}, err
	}
	if _, err := p.expect(tComma, context); err != nil {
		return geom.Vec3{}, err
	}
	z, err := p.parseFloat(context)
	if err != nil {
		return geom.Vec3{}, err
	}
	if _, err := p.expect(tRParen, context); err != nil {
		return geom.Vec3{}, err
	}
	return geom.Vec3{X: x, Y: y, Z: z}, nil
}

func (p *parser) parseVec3Pair(context string) (geom.Vec3, geom.Vec3, error) {
	if _, err := p.expect(tLParen, context); err != nil {
		return geom.Vec3{}, geom.Vec3{}, err
	}
	a, err := p.parseVec3(context)
	if err != nil {
		return geom.Vec3{}, geom.Vec3{}, err
	}
	if _, err := p.expect(tComma, context); err != nil {
		return geom.Vec3{}, geom.Vec3{}, err
	}
	b, err := p.parseVec3(context)
	if err != nil {
		return geom.Vec3{}, geom.Vec3{}, err
	}
	if _, err := p.expect(tRParen, context); err != nil {
		return geom.Vec3{}, geom.Vec3{}, err
	}
	return a, b, nil
}

func (p *parser) parseVec3Triple(context string) (geom.Vec3, geom.Vec3, geom.Vec3, error) {
	if _, err := p.expect(tLParen, context); err != nil {
		return geom.Vec3{}, geom.Vec3{}, geom.Vec3{}, err
	}
	a, err := p.parseVec3(context)
	if err != nil {
		return geom.Vec3{}, geom.Vec3{}, geom.Vec3{}, err
	}
	if _, err := p.expect(tComma, context); err != nil {
		return geom.Vec3{}, geom.Vec3{}, geom.Vec3{}, err
	}
	b, err := p.parseVec3(context)
	if err != nil {
		return geom.Vec3{}, geom.Vec3{}, geom.Vec3{}, err
	}
	if _, err := p.expect(tComma, context); err != nil {
		return geom.Vec3{}, geom.Vec3{}, geom.Vec3{}, err
	}
	c, err := p.parseVec3(context)
	if err != nil {
		return geom.Vec3{}, geom.Vec3{}, geom.Vec3{}, err
	}
	if _, err := p.expect(tRParen, context); err != nil {
		return geom.Vec3{}, geom.Vec3{}, geom.Vec3{}, err
	}
	return a, b, c, nil
}

func (p *parser) parseUVMap(context string) (scene.UVMap, error) {
	if _, err := p.expect(tLParen, context); err != nil {
		return scene.UVMap{}, err
	}
	uv0, err := p.parseVec2(context)
	if err != nil {
		return scene.UVMap{}, err
	}
	if _, err := p.expect(tComma, context); err != nil {
		return scene.UVMap{}, err
	}
	uv1, err := p.parseVec2(context)
	if err != nil {
		return scene.UVMap{}, err
	}
	if _, err := p.expect(tComma, context); err != nil {
		return scene.UVMap{}, err
	}
	uv2, err := p.parseVec2(context)
	if err != nil {
		return scene.UVMap{}, err
	}
	if _, err := p.expect(tRParen, context); err != nil {
		return scene.UVMap{}, err
	}
	return scene.UVMap{UV0: uv0, UV1: uv1, UV2: uv2}, nil
}

// parseTextures parses the optional `Textures { N = "path", ... }` block
// that precedes objects, collecting declared 1-based indices into dst.
func (p *parser) parseTextures(dst map[int]string) error {
	p.advance() // "Textures"
	if _, err := p.expect(tLBrace, "Invalid Textures block. Expected '{'."); err != nil {
		return err
	}
	for p.tok.kind != tRBrace {
		if p.tok.kind == tEOF {
			return p.syntaxError("Unterminated Textures block.")
		}
		idxTok, err := p.expect(tNumber, "Expected a texture index.")
		if err != nil {
			return err
		}
		if _, err := p.expect(tEquals, "Expected '=' after texture index."); err != nil {
			return err
		}
		pathTok, err := p.expect(tString, "Expected a quoted texture path.")
		if err != nil {
			return err
		}
		idx := int(idxTok.num)
		if idx < 1 {
			return &SemanticError{Line: idxTok.line, Col: idxTok.col, Context: "texture index must be >= 1."}
		}
		if _, dup := dst[idx]; dup {
			return &SemanticError{Line: idxTok.line, Col: idxTok.col, Context: fmt.Sprintf("duplicate texture index %d.", idx)}
		}
		dst[idx] = pathTok.text
		if p.tok.kind == tComma {
			p.advance()
		}
	}
	p.advance() // }
	return nil
}

// parseCamera parses `Camera (header...) { body... }`, applying header
// fields (Origin, DistToSurface, SurfaceWidth, SurfaceHeight) and body
// properties (LookAt, SkyColor) onto the scene's default camera.
func (p *parser) parseCamera(sc *scene.Scene) error {
	p.advance() // "Camera"
	cam := sc.Camera
	sky := sc.SkyColor

	if p.tok.kind == tLParen {
		p.advance()
		seen := map[string]bool{}
		for p.tok.kind != tRParen {
			name, err := p.propertyName(seen, "Invalid camera declaration. Expected a property name.")
			if err != nil {
				return err
			}
			switch name {
			case "Origin":
				v, err := p.parseVec3("Invalid Origin value. Expected (x, y, z).")
				if err != nil {
					return err
				}
				cam.Origin = v
			case "DistToSurface":
				f, err := p.parseFloat("Invalid DistToSurface value.")
				if err != nil {
					return err
				}
				cam.DistToSurface = f
			case "SurfaceWidth":
				f, err := p.parseFloat("Invalid SurfaceWidth value.")
				if err != nil {
					return err
				}
				cam.SurfaceWidth = f
			case "SurfaceHeight":
				f, err := p.parseFloat("Invalid SurfaceHeight value.")
				if err != nil {
					return err
				}
				cam.SurfaceHeight = f
			default:
				return p.syntaxError(fmt.Sprintf("Unknown camera property %q.", name))
			}
			if p.tok.kind == tComma {
				p.advance()
			}
		}
		p.advance() // )
	}

	if _, err := p.expect(tLBrace, "Invalid camera declaration. Expected '{'."); err != nil {
		return err
	}
	seen := map[string]bool{}
	for p.tok.kind != tRBrace {
		if p.tok.kind == tEOF {
			return p.syntaxError("Unterminated camera declaration.")
		}
		name, err := p.propertyName(seen, "Expected a camera property name.")
		if err != nil {
			return err
		}
		switch name {
		case "LookAt":
			dest, err := p.parseVec3("Invalid LookAt value. Expected (x, y, z).")
			if err != nil {
				return err
			}
			basis := scene.LookAt(cam.Origin, dest)
			cam.XAxis, cam.YAxis, cam.ZAxis = basis.XAxis, basis.YAxis, basis.ZAxis
		case "SkyColor":
			c, err := p.parseVec3("Invalid SkyColor value. Expected (r, g, b).")
			if err != nil {
				return err
			}
			sky = c
		default:
			return p.syntaxError(fmt.Sprintf("Unknown camera property %q.", name))
		}
		if p.tok.kind == tComma {
			p.advance()
		}
	}
	p.advance() // }

	sc.Camera = cam
	sc.SkyColor = sky
	return nil
}

// propertyName consumes `Name =`, checking Name hasn't already appeared
// in seen (a duplicate-property semantic error) and marking it seen. Every
// property after the first must follow a ','.
func (p *parser) propertyName(seen map[string]bool, context string) (string, error) {
	if len(seen) > 0 && p.prev.kind != tComma {
		return "", p.syntaxError("Expected ',' between properties.")
	}
	if p.tok.kind != tIdent {
		return "", p.syntaxError(context)
	}
	nameTok := p.tok
	p.advance()
	if _, err := p.expect(tEquals, fmt.Sprintf("Expected '=' after %q.", nameTok.text)); err != nil {
		return "", err
	}
	if seen[nameTok.text] {
		return "", &SemanticError{Line: nameTok.line, Col: nameTok.col, Context: fmt.Sprintf("duplicate property %q.", nameTok.text)}
	}
	seen[nameTok.text] = true
	return nameTok.text, nil
}

// parseShadingBody parses the `{ Color = ..., Glossy = ..., ... }` block
// common to every primitive kind.
func (p *parser) parseShadingBody(prim *scene.Primitive) error {
	if _, err := p.expect(tLBrace, "Expected '{' to begin object properties."); err != nil {
		return err
	}
	seen := map[string]bool{}
	for p.tok.kind != tRBrace {
		if p.tok.kind == tEOF {
			return p.syntaxError("Unterminated object declaration.")
		}
		nameTok := p.tok
		name, err := p.propertyName(seen, "Expected an object property name.")
		if err != nil {
			return err
		}
		switch name {
		case "Color":
			v, err := p.parseVec3("Invalid Color value. Expected (r, g, b).")
			if err != nil {
				return err
			}
			prim.BaseColor = v
		case "Glossy":
			f, err := p.parseFloat("Invalid Glossy value.")
			if err != nil {
				return err
			}
			prim.Glossy = f
		case "Translucency":
			f, err := p.parseFloat("Invalid Translucency value.")
			if err != nil {
				return err
			}
			prim.Translucency = f
		case "Refraction":
			f, err := p.parseFloat("Invalid Refraction value.")
			if err != nil {
				return err
			}
			prim.Refraction = f
		case "Texture":
			f, err := p.parseFloat("Invalid Texture value.")
			if err != nil {
				return err
			}
			idx := int(f)
			if idx < 1 {
				return &SemanticError{Line: nameTok.line, Col: nameTok.col, Context: "texture index must be >= 1."}
			}
			prim.TextureIndex = idx
		case "UVMap":
			uv, err := p.parseUVMap("Invalid UVMap value. Expected ((u,v), (u,v), (u,v)).")
			if err != nil {
				return err
			}
			prim.UVMap = uv
		default:
			return p.syntaxError(fmt.Sprintf("Unknown object property %q.", name))
		}
		if p.tok.kind == tComma {
			p.advance()
		}
	}
	p.advance() // }
	return nil
}

func (p *parser) parsePlane() (scene.Primitive, error) {
	p.advance() // "Plane"
	if _, err := p.expect(tLParen, "Invalid plane declaration. Expected '('."); err != nil {
		return scene.Primitive{}, err
	}
	var normal geom.Vec3
	var disp float32
	seen := map[string]bool{}
	for p.tok.kind != tRParen {
		name, err := p.propertyName(seen, "Invalid plane declaration. Expected a property name.")
		if err != nil {
			return scene.Primitive{}, err
		}
		switch name {
		case "Normal":
			if normal, err = p.parseVec3("Invalid Normal value. Expected (x, y, z)."); err != nil {
				return scene.Primitive{}, err
			}
		case "Displacement":
			if disp, err = p.parseFloat("Invalid Displacement value."); err != nil {
				return scene.Primitive{}, err
			}
		default:
			return scene.Primitive{}, p.syntaxError(fmt.Sprintf("Unknown plane property %q.", name))
		}
		if p.tok.kind == tComma {
			p.advance()
		}
	}
	p.advance() // )
	prim := scene.NewPlane(normal, disp)
	if err := p.parseShadingBody(&prim); err != nil {
		return scene.Primitive{}, err
	}
	return prim, nil
}

func (p *parser) parseSphere() (scene.Primitive, error) {
	p.advance() // "Sphere"
	if _, err := p.expect(tLParen, "Invalid sphere declaration. Expected '('."); err != nil {
		return scene.Primitive{}, err
	}
	var center geom.Vec3
	var radius float32
	seen := map[string]bool{}
	for p.tok.kind != tRParen {
		name, err := p.propertyName(seen, "Invalid sphere declaration. Expected a property name.")
		if err != nil {
			return scene.Primitive{}, err
		}
		switch name {
		case "Center":
			if center, err = p.parseVec3("Invalid Center value. Expected (x, y, z)."); err != nil {
				return scene.Primitive{}, err
			}
		case "Radius":
			if radius, err = p.parseFloat("Invalid Radius value."); err != nil {
				return scene.Primitive{}, err
			}
		default:
			return scene.Primitive{}, p.syntaxError(fmt.Sprintf("Unknown sphere property %q.", name))
		}
		if p.tok.kind == tComma {
			p.advance()
		}
	}
	p.advance() // )
	prim := scene.NewSphere(center, radius)
	if err := p.parseShadingBody(&prim); err != nil {
		return scene.Primitive{}, err
	}
	return prim, nil
}

func (p *parser) parseTriangle() (scene.Primitive, error) {
	p.advance() // "Triangle"
	if _, err := p.expect(tLParen, "Invalid triangle declaration. Expected '('."); err != nil {
		return scene.Primitive{}, err
	}
	var v0, v1, v2 geom.Vec3
	seen := map[string]bool{}
	for p.tok.kind != tRParen {
		name, err := p.propertyName(seen, "Invalid triangle declaration. Expected a property name.")
		if err != nil {
			return scene.Primitive{}, err
		}
		switch name {
		case "Vertices":
			if v0, v1, v2, err = p.parseVec3Triple("Invalid Vertices value. Expected ((x,y,z), (x,y,z), (x,y,z))."); err != nil {
				return scene.Primitive{}, err
			}
		default:
			return scene.Primitive{}, p.syntaxError(fmt.Sprintf("Unknown triangle property %q.", name))
		}
		if p.tok.kind == tComma {
			p.advance()
		}
	}
	p.advance() // )
	prim := scene.NewTriangle(v0, v1, v2)
	if err := p.parseShadingBody(&prim); err != nil {
		return scene.Primitive{}, err
	}
	return prim, nil
}

func (p *parser) parseParallelogram() (scene.Primitive, error) {
	p.advance() // "Parallelogram"
	if _, err := p.expect(tLParen, "Invalid parallelogram declaration. Expected '('."); err != nil {
		return scene.Primitive{}, err
	}
	var origin, xAxis, yAxis geom.Vec3
	seen := map[string]bool{}
	for p.tok.kind != tRParen {
		name, err := p.propertyName(seen, "Invalid parallelogram declaration. Expected a property name.")
		if err != nil {
			return scene.Primitive{}, err
		}
		switch name {
		case "Origin":
			if origin, err = p.parseVec3("Invalid Origin value. Expected (x, y, z)."); err != nil {
				return scene.Primitive{}, err
			}
		case "Axes":
			if xAxis, yAxis, err = p.parseVec3Pair("Invalid Axes value. Expected ((x,y,z), (x,y,z))."); err != nil {
				return scene.Primitive{}, err
			}
		default:
			return scene.Primitive{}, p.syntaxError(fmt.Sprintf("Unknown parallelogram property %q.", name))
		}
		if p.tok.kind == tComma {
			p.advance()
		}
	}
	p.advance() // )
	prim := scene.NewParallelogram(origin, xAxis, yAxis)
	if err := p.parseShadingBody(&prim); err != nil {
		return scene.Primitive{}, err
	}
	return prim, nil
}
