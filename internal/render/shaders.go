package render

import rl "github.com/gen2brain/raylib-go/raylib"

// Matcap shading: the view-space normal picks a texel from the matcap image.
const (
	matcapVS = `#version 330
in vec3 vertexPosition;
in vec3 vertexNormal;
uniform mat4 mvp;
uniform mat4 matView;
uniform mat4 matModel;
uniform mat4 matNormal;
out vec3 fragNormal;
out vec3 fragViewPos;
void main() {
  vec4 viewPos = matView * matModel * vec4(vertexPosition, 1.0);
  fragViewPos = -viewPos.xyz;
  fragNormal = normalize(mat3(matView) * mat3(matNormal) * vertexNormal);
  gl_Position = mvp * vec4(vertexPosition, 1.0);
}
`
	matcapFS = `#version 330
in vec3 fragNormal;
in vec3 fragViewPos;
uniform sampler2D texture0;
uniform vec4 colDiffuse;
out vec4 finalColor;
void main() {
  vec3 viewDir = normalize(fragViewPos);
  vec3 n = normalize(fragNormal);
  vec3 x = normalize(vec3(viewDir.z, 0.0, -viewDir.x));
  vec3 y = cross(viewDir, x);
  vec2 uv = vec2(dot(x, n), dot(y, n)) * 0.495 + 0.5;
  finalColor = texture(texture0, vec2(uv.x, 1.0 - uv.y)) * colDiffuse;
}
`
)

// Skybox: the cube is drawn around the camera with the view's rotation only.
const (
	skyboxVS = `#version 330
in vec3 vertexPosition;
uniform mat4 matProjection;
uniform mat4 matView;
out vec3 fragPosition;
void main() {
  fragPosition = vertexPosition;
  mat4 rotView = mat4(mat3(matView));
  vec4 clipPos = matProjection * rotView * vec4(vertexPosition, 1.0);
  gl_Position = clipPos;
}
`
	skyboxFS = `#version 330
in vec3 fragPosition;
uniform samplerCube environmentMap;
out vec4 finalColor;
void main() {
  finalColor = vec4(texture(environmentMap, fragPosition).rgb, 1.0);
}
`
)

func loadMatcapShader() rl.Shader {
	return rl.LoadShaderFromMemory(matcapVS, matcapFS)
}

func loadSkyboxShader() rl.Shader {
	s := rl.LoadShaderFromMemory(skyboxVS, skyboxFS)
	if rl.IsShaderValid(s) {
		s.UpdateLocation(rl.ShaderLocMapCubemap, rl.GetShaderLocation(s, "environmentMap"))
	}
	return s
}
