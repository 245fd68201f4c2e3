package decompiler

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const sdkProject = `<Project Sdk="Microsoft.NET.Sdk">
  <PropertyGroup>
    <AssemblyName>LogicWorld.Server</AssemblyName>
    <TargetFramework>netstandard2.1</TargetFramework>
  </PropertyGroup>
  <ItemGroup>
    <Reference Include="LogicAPI">
      <HintPath>../../Server/LogicAPI.dll</HintPath>
    </Reference>
    <Reference Include="SUCC, Version=1.0.0.0, Culture=neutral, PublicKeyToken=null" />
  </ItemGroup>
  <ItemGroup>
    <Reference Include="JimmysUnityUtilities" />
    <Reference Include="LogicAPI" />
  </ItemGroup>
</Project>`

const legacyProject = `<?xml version="1.0" encoding="utf-8"?>
<Project ToolsVersion="4.0" xmlns="http://schemas.microsoft.com/developer/msbuild/2003">
  <ItemGroup>
    <Reference Include="mscorlib" />
    <Reference Include="System.Core" />
    <Compile Include="Program.cs" />
  </ItemGroup>
</Project>`

func TestParseProjectReferencesKeepsOrder(t *testing.T) {
	refs, err := ParseProjectReferences([]byte(sdkProject))
	require.NoError(t, err)
	require.Equal(t, []string{"LogicAPI", "SUCC", "JimmysUnityUtilities"}, refs)
}

func TestParseProjectReferencesWithNamespace(t *testing.T) {
	refs, err := ParseProjectReferences([]byte(legacyProject))
	require.NoError(t, err)
	require.Equal(t, []string{"mscorlib", "System.Core"}, refs)
}

func TestParseProjectReferencesRejectsGarbage(t *testing.T) {
	_, err := ParseProjectReferences([]byte("<Project><ItemGroup>"))
	require.Error(t, err)
}

func TestFindProjectFilePrefersModuleName(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Another.csproj"), nil, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "SUCC.csproj"), nil, 0644))

	got, err := FindProjectFile(dir, "SUCC")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "SUCC.csproj"), got)

	got, err = FindProjectFile(dir, "Missing")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "Another.csproj"), got)

	_, err = FindProjectFile(t.TempDir(), "SUCC")
	require.True(t, errors.Is(err, ErrNoProjectFile))
}

func TestILSpyCmdArgs(t *testing.T) {
	d := NewILSpyCmd("ilspycmd", nil)
	modulePath := filepath.Join("/lw", "Server", "SUCC.dll")
	require.Equal(t,
		[]string{"-p", "-o", "/out/SUCC", "-r", filepath.Join("/lw", "Server"), modulePath},
		d.Args(modulePath, "/out/SUCC"),
	)
}

func TestILSpyCmdDecompileRunsCommand(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script stand-in requires a POSIX shell")
	}

	script := writeScript(t, `#!/bin/sh
out="$3"
mkdir -p "$out/LogicWorld.Server.Networking"
echo "namespace LogicWorld.Server.Networking;" > "$out/LogicWorld.Server.Networking/Packet.cs"
cat > "$out/LogicWorld.Server.csproj" <<'XML'
`+sdkProject+`
XML
`)
	out := filepath.Join(t.TempDir(), "LogicWorld.Server")
	require.NoError(t, os.MkdirAll(out, 0755))

	result, err := NewILSpyCmd(script, nil).Decompile(context.Background(), "/lw/Server/LogicWorld.Server.dll", out)
	require.NoError(t, err)
	require.Equal(t, []string{"LogicAPI", "SUCC", "JimmysUnityUtilities"}, result.References)
	require.Equal(t, filepath.Join(out, "LogicWorld.Server.csproj"), result.ProjectFile)
}

func TestILSpyCmdDecompileReportsStderr(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script stand-in requires a POSIX shell")
	}

	script := writeScript(t, "#!/bin/sh\necho 'bad image format' >&2\nexit 3\n")
	_, err := NewILSpyCmd(script, nil).Decompile(context.Background(), "/lw/Server/Broken.dll", t.TempDir())
	require.Error(t, err)
	require.True(t, strings.Contains(err.Error(), "bad image format"), err.Error())
	require.True(t, strings.Contains(err.Error(), "Broken.dll"), err.Error())
}

func TestILSpyCmdDecompileRequiresProjectFile(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script stand-in requires a POSIX shell")
	}

	script := writeScript(t, "#!/bin/sh\nexit 0\n")
	_, err := NewILSpyCmd(script, nil).Decompile(context.Background(), "/lw/Server/Empty.dll", t.TempDir())
	require.True(t, errors.Is(err, ErrNoProjectFile))
}

func TestProbeWithLookPath(t *testing.T) {
	found := ProbeWithLookPath("ilspycmd", func(file string) (string, error) {
		return "/usr/local/bin/" + file, nil
	})
	require.True(t, found.Available)
	require.Equal(t, "/usr/local/bin/ilspycmd", found.Resolved)

	missing := ProbeWithLookPath("ilspycmd", func(string) (string, error) {
		return "", errors.New("not found")
	})
	require.False(t, missing.Available)
	require.Equal(t, "command_not_found", missing.Reason)

	require.Equal(t, "command_not_configured", ProbeWithLookPath("", nil).Reason)
}

func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fake-ilspycmd")
	require.NoError(t, os.WriteFile(path, []byte(body), 0755))
	return path
}
