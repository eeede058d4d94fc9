package gl21

import "github.com/gogpu/gl2d/driver"

// The vertex stage is shared: fixed-function transform, pass color
// and the unit-0 texture coordinate through.
const vertexShaderSource = `
varying vec4 v_color;
varying vec2 v_texCoord;

void main()
{
	gl_Position = ftransform();
	v_color = gl_Color;
	v_texCoord = vec2(gl_MultiTexCoord0);
}
`

const solidFragment = `
varying vec4 v_color;

void main()
{
	gl_FragColor = v_color;
}
`

const rgbFragment = `
varying vec4 v_color;
varying vec2 v_texCoord;
uniform sampler2D tex0;

void main()
{
	gl_FragColor = texture2D(tex0, v_texCoord) * v_color;
}
`

// YUV conversion constants. JPEG is full range; BT.601 and BT.709 are
// studio range with the usual 16..235 luma excursion.
const (
	jpegConstants = `
const vec3 offset = vec3(0.0, -0.501960814, -0.501960814);
const mat3 matrix = mat3( 1.0,     1.0,      1.0,
                          0.0,    -0.3441,   1.7720,
                          1.402,  -0.7141,   0.0);
`
	bt601Constants = `
const vec3 offset = vec3(-0.0627451017, -0.501960814, -0.501960814);
const mat3 matrix = mat3( 1.1644,  1.1644,   1.1644,
                          0.0,    -0.3918,   2.0172,
                          1.596,  -0.813,    0.0);
`
	bt709Constants = `
const vec3 offset = vec3(-0.0627451017, -0.501960814, -0.501960814);
const mat3 matrix = mat3( 1.1644,  1.1644,   1.1644,
                          0.0,    -0.2132,   2.1124,
                          1.7927, -0.5329,   0.0);
`
)

// Three-plane YUV: Y, U and V each come from their own sampler.
const yuvBody = `
varying vec4 v_color;
varying vec2 v_texCoord;
uniform sampler2D tex0; // Y
uniform sampler2D tex1; // U
uniform sampler2D tex2; // V

void main()
{
	vec3 yuv;
	yuv.x = texture2D(tex0, v_texCoord).r;
	yuv.y = texture2D(tex1, v_texCoord).r;
	yuv.z = texture2D(tex2, v_texCoord).r;
	yuv += offset;
	gl_FragColor = vec4(matrix * yuv, 1.0) * v_color;
}
`

// Semi-planar: chroma is a two-channel luminance-alpha texture.
// NV12 stores U in luminance and V in alpha; NV21 the other way.
const nv12Body = `
varying vec4 v_color;
varying vec2 v_texCoord;
uniform sampler2D tex0; // Y
uniform sampler2D tex1; // UV

void main()
{
	vec3 yuv;
	yuv.x = texture2D(tex0, v_texCoord).r;
	yuv.yz = texture2D(tex1, v_texCoord).ra;
	yuv += offset;
	gl_FragColor = vec4(matrix * yuv, 1.0) * v_color;
}
`

const nv21Body = `
varying vec4 v_color;
varying vec2 v_texCoord;
uniform sampler2D tex0; // Y
uniform sampler2D tex1; // VU

void main()
{
	vec3 yuv;
	yuv.x = texture2D(tex0, v_texCoord).r;
	yuv.yz = texture2D(tex1, v_texCoord).ar;
	yuv += offset;
	gl_FragColor = vec4(matrix * yuv, 1.0) * v_color;
}
`

// fragmentSources maps every selectable shader kind to its fragment
// stage. ShaderInvalid has no entry; SelectShader handles it before
// the lookup.
var fragmentSources = [driver.NumShaderKinds]string{
	driver.ShaderSolid:     solidFragment,
	driver.ShaderRGB:       rgbFragment,
	driver.ShaderYUVJPEG:   jpegConstants + yuvBody,
	driver.ShaderYUVBT601:  bt601Constants + yuvBody,
	driver.ShaderYUVBT709:  bt709Constants + yuvBody,
	driver.ShaderNV12JPEG:  jpegConstants + nv12Body,
	driver.ShaderNV12BT601: bt601Constants + nv12Body,
	driver.ShaderNV12BT709: bt709Constants + nv12Body,
	driver.ShaderNV21JPEG:  jpegConstants + nv21Body,
	driver.ShaderNV21BT601: bt601Constants + nv21Body,
	driver.ShaderNV21BT709: bt709Constants + nv21Body,
}
