//go:build unix

package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnsurePathInWorkingDirectory_Internal(t *testing.T) {
	r := require.New(t)
	tempDir := t.TempDir()
	fp := filepath.Join(tempDir, "testfile.txt")
	r.NoError(os.WriteFile(fp, []byte("test data"), 0644))

	type args struct {
		path             string
		workingDirectory string
	}
	tests := []struct {
		name    string
		args    args
		want    string
		wantErr bool
	}{
		{
			name: "valid path in working directory",
			args: args{
				path:             "testfile.txt",
				workingDirectory: tempDir,
			},
			want: filepath.Join(tempDir, "testfile.txt"),
		},
		{
			name: "valid absolute path in working directory",
			args: args{
				path:             fp,
				workingDirectory: tempDir,
			},
			want: fp,
		},
		{
			name: "nested path with dots that stays inside",
			args: args{
				path:             "css/../testfile.txt",
				workingDirectory: tempDir,
			},
			want: fp,
		},
		{
			name: "invalid path escaping working directory",
			args: args{
				path:             "../testfile.txt",
				workingDirectory: tempDir,
			},
			wantErr: true,
		},
		{
			name: "invalid absolute path not in working directory",
			args: args{
				path:             filepath.Join(tempDir, "../../testfile.txt"),
				workingDirectory: tempDir,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ensurePathInWorkingDirectory(tt.args.path, tt.args.workingDirectory)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ensurePathInWorkingDirectory() error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ensurePathInWorkingDirectory() unexpected error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ensurePathInWorkingDirectory() got = %v, want %v", got, tt.want)
			}
		})
	}
}
