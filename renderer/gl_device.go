package renderer

import (
	"fmt"
	"image"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"face_mesh_renderer/model"
)

// vertex shader: MVP transform, world-space normal and position for lighting.
const vertSrc = `
#version 410 core
layout(location = 0) in vec3 inPosition;
layout(location = 1) in vec3 inNormal;
layout(location = 2) in vec2 inUV;

uniform mat4 mvp;
uniform mat4 model;

out vec3 fragNormal;
out vec2 fragUV;
out vec3 fragWorldPos;

void main() {
    gl_Position  = mvp * vec4(inPosition, 1.0);
    fragNormal   = mat3(model) * inNormal;
    fragUV       = inUV;
    fragWorldPos = (model * vec4(inPosition, 1.0)).xyz;
}
` + "\x00"

// fragment shader: ambient plus Lambert terms for up to MAX_LIGHTS lights.
// lightPos.w == 0 marks a directional light. Specular is always black in
// this pipeline so there is no specular term at all.
const fragSrc = `
#version 410 core
in vec3 fragNormal;
in vec2 fragUV;
in vec3 fragWorldPos;

out vec4 outColor;

#define MAX_LIGHTS 4
uniform int   lightCount;
uniform vec4  lightPos[MAX_LIGHTS];
uniform vec3  lightColor[MAX_LIGHTS];
uniform vec3  ambientColor;

uniform vec3      matAmbient;
uniform vec4      matDiffuse;
uniform sampler2D tex;
uniform bool      hasTexture;

void main() {
    vec4 base = matDiffuse;
    if (hasTexture) {
        base *= texture(tex, fragUV);
    }
    vec3 N = normalize(fragNormal);
    vec3 color = ambientColor * matAmbient * base.rgb;
    for (int i = 0; i < lightCount && i < MAX_LIGHTS; i++) {
        vec3 L;
        if (lightPos[i].w == 0.0) {
            L = normalize(lightPos[i].xyz);
        } else {
            L = normalize(lightPos[i].xyz - fragWorldPos);
        }
        color += lightColor[i] * max(dot(N, L), 0.0) * base.rgb;
    }
    outColor = vec4(color, base.a);
}
` + "\x00"

// floats per streamed vertex: position 3, normal 3, uv 2
const vertexFloats = 8

// GLDevice is the OpenGL 4.1 core implementation of Device. All methods must
// run on the thread that owns the GL context.
type GLDevice struct {
	program uint32
	vao     uint32
	vbo     uint32
	vboCap  int

	mvpLoc        int32
	modelLoc      int32
	lightCountLoc int32
	lightPosLoc   [model.MAX_LIGHTS]int32
	lightColorLoc [model.MAX_LIGHTS]int32
	ambientLoc    int32
	matAmbientLoc int32
	matDiffuseLoc int32
	hasTextureLoc int32

	maxTextureSize int
	wireframe      bool
}

var _ Device = (*GLDevice)(nil)

// NewGLDevice initializes OpenGL and compiles the pipeline. Must be called
// after the window's GL context is made current.
func NewGLDevice() (*GLDevice, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	prog, err := newProgram(vertSrc, fragSrc)
	if err != nil {
		return nil, fmt.Errorf("shader compile: %w", err)
	}

	d := &GLDevice{
		program: prog,

		mvpLoc:        gl.GetUniformLocation(prog, gl.Str("mvp\x00")),
		modelLoc:      gl.GetUniformLocation(prog, gl.Str("model\x00")),
		lightCountLoc: gl.GetUniformLocation(prog, gl.Str("lightCount\x00")),
		ambientLoc:    gl.GetUniformLocation(prog, gl.Str("ambientColor\x00")),
		matAmbientLoc: gl.GetUniformLocation(prog, gl.Str("matAmbient\x00")),
		matDiffuseLoc: gl.GetUniformLocation(prog, gl.Str("matDiffuse\x00")),
		hasTextureLoc: gl.GetUniformLocation(prog, gl.Str("hasTexture\x00")),
	}
	for i := 0; i < model.MAX_LIGHTS; i++ {
		d.lightPosLoc[i] = gl.GetUniformLocation(prog,
			gl.Str(fmt.Sprintf("lightPos[%d]\x00", i)))
		d.lightColorLoc[i] = gl.GetUniformLocation(prog,
			gl.Str(fmt.Sprintf("lightColor[%d]\x00", i)))
	}

	var maxSize int32
	gl.GetIntegerv(gl.MAX_TEXTURE_SIZE, &maxSize)
	d.maxTextureSize = int(maxSize)

	// One streaming buffer is enough, triangle lists are rebuilt every frame.
	gl.GenVertexArrays(1, &d.vao)
	gl.GenBuffers(1, &d.vbo)
	gl.BindVertexArray(d.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.vbo)

	stride := int32(vertexFloats * 4)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, gl.PtrOffset(3*4))
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 2, gl.FLOAT, false, stride, gl.PtrOffset(6*4))
	gl.BindVertexArray(0)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)

	gl.UseProgram(prog)
	gl.Uniform1i(gl.GetUniformLocation(prog, gl.Str("tex\x00")), 0)

	return d, nil
}

func (d *GLDevice) MaxTextureSize() int {
	return d.maxTextureSize
}

// CreateTexture uploads a prepared mipmap chain to a freshly generated
// handle, level by level. The binding of texture unit 0 is clobbered; callers
// must not rely on it across calls.
func (d *GLDevice) CreateTexture(levels []*image.RGBA) (TextureID, error) {
	if len(levels) == 0 {
		return 0, fmt.Errorf("no mipmap levels to upload")
	}

	// Flush stale errors so the check below only sees this upload.
	for gl.GetError() != gl.NO_ERROR {
	}

	var id uint32
	gl.GenTextures(1, &id)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAX_LEVEL, int32(len(levels)-1))

	for i, lvl := range levels {
		w, h := lvl.Rect.Dx(), lvl.Rect.Dy()
		gl.TexImage2D(gl.TEXTURE_2D, int32(i), gl.RGBA8,
			int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(lvl.Pix))
	}

	if errCode := gl.GetError(); errCode != gl.NO_ERROR {
		gl.DeleteTextures(1, &id)
		return 0, fmt.Errorf("texture upload failed, GL error 0x%04x", errCode)
	}
	return TextureID(id), nil
}

func (d *GLDevice) DeleteTexture(id TextureID) {
	glID := uint32(id)
	gl.DeleteTextures(1, &glID)
}

func (d *GLDevice) SetTransform(mvp, modelMat mgl32.Mat4) {
	gl.UseProgram(d.program)
	gl.UniformMatrix4fv(d.mvpLoc, 1, false, &mvp[0])
	gl.UniformMatrix4fv(d.modelLoc, 1, false, &modelMat[0])
}

func (d *GLDevice) SetLighting(l model.Lighting) {
	gl.UseProgram(d.program)
	gl.Uniform3f(d.ambientLoc, l.Ambient.X(), l.Ambient.Y(), l.Ambient.Z())

	n := len(l.Lights)
	if n > model.MAX_LIGHTS {
		n = model.MAX_LIGHTS
	}
	for i := 0; i < n; i++ {
		lt := l.Lights[i]
		w := float32(1)
		if lt.Directional {
			w = 0
		}
		gl.Uniform4f(d.lightPosLoc[i], lt.Pos.X(), lt.Pos.Y(), lt.Pos.Z(), w)
		gl.Uniform3f(d.lightColorLoc[i], lt.Color.X(), lt.Color.Y(), lt.Color.Z())
	}
	gl.Uniform1i(d.lightCountLoc, int32(n))
}

func (d *GLDevice) SetMaterial(m model.Material, tex TextureID, textured bool) {
	gl.UseProgram(d.program)
	gl.Uniform3f(d.matAmbientLoc, m.Ambient.X(), m.Ambient.Y(), m.Ambient.Z())
	gl.Uniform4f(d.matDiffuseLoc, m.Diffuse.X(), m.Diffuse.Y(), m.Diffuse.Z(), m.Diffuse.W())
	if textured && tex != 0 {
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, uint32(tex))
		gl.Uniform1i(d.hasTextureLoc, 1)
	} else {
		gl.Uniform1i(d.hasTextureLoc, 0)
	}
}

// SetWireframe toggles wireframe rendering mode.
func (d *GLDevice) SetWireframe(enabled bool) {
	d.wireframe = enabled
	if enabled {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	} else {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
}

// IsWireframe returns whether wireframe mode is active.
func (d *GLDevice) IsWireframe() bool {
	return d.wireframe
}

func (d *GLDevice) SetBlending(enabled bool) {
	if enabled {
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	} else {
		gl.Disable(gl.BLEND)
	}
}

// DrawTriangles streams the triangle list through the shared dynamic buffer
// and draws it in slice order. Allocation only happens when the list outgrows
// the buffer.
func (d *GLDevice) DrawTriangles(tris []Tri) {
	if len(tris) == 0 {
		return
	}

	buf := make([]float32, 0, len(tris)*3*vertexFloats)
	for _, t := range tris {
		for i := 0; i < 3; i++ {
			buf = append(buf,
				t.Pos[i].X(), t.Pos[i].Y(), t.Pos[i].Z(),
				t.Nrm[i].X(), t.Nrm[i].Y(), t.Nrm[i].Z(),
				t.UV[i].X(), t.UV[i].Y())
		}
	}

	byteSize := len(buf) * 4
	gl.BindVertexArray(d.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.vbo)
	if byteSize > d.vboCap {
		gl.BufferData(gl.ARRAY_BUFFER, byteSize, gl.Ptr(buf), gl.DYNAMIC_DRAW)
		d.vboCap = byteSize
	} else {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, byteSize, gl.Ptr(buf))
	}
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(tris)*3))
	gl.BindVertexArray(0)
}

// Viewport resizes the GL viewport to the drawable size.
func (d *GLDevice) Viewport(w, h int32) {
	gl.Viewport(0, 0, w, h)
}

// Clear wipes color and depth for a new frame.
func (d *GLDevice) Clear(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Destroy releases the pipeline and buffers. Texture handles are owned by
// the scene objects and released through their Destroy.
func (d *GLDevice) Destroy() {
	gl.DeleteBuffers(1, &d.vbo)
	gl.DeleteVertexArrays(1, &d.vao)
	gl.DeleteProgram(d.program)
}

func newProgram(vertSrc, fragSrc string) (uint32, error) {
	vert, err := compileShader(vertSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex: %w", err)
	}
	frag, err := compileShader(fragSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, fmt.Errorf("fragment: %w", err)
	}

	prog := gl.CreateProgram()
	gl.AttachShader(prog, vert)
	gl.AttachShader(prog, frag)
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		infoLog := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(infoLog))
		return 0, fmt.Errorf("link failed: %v", infoLog)
	}

	gl.DeleteShader(vert)
	gl.DeleteShader(frag)
	return prog, nil
}

func compileShader(src string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src)
	gl.ShaderSource(shader, 1, csrc, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		infoLog := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(infoLog))
		return 0, fmt.Errorf("compile failed: %v", infoLog)
	}
	return shader, nil
}
