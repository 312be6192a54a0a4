package extraction

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/context"

	"github.com/mholt/archives"
)

// Dataset points at the two CSV files recovered from an uploaded archive.
// Dir is the temporary extraction directory the caller must remove once
// the snapshot has been loaded.
type Dataset struct {
	AircraftCSV string
	DroneCSV    string
	Dir         string
}

// ExtractDataset extracts an uploaded dataset archive (ZIP, TAR, ...) to a
// temporary directory and locates the aircraft and drone CSVs inside it by
// sniffing column headers. Archives missing either file are rejected.
func ExtractDataset(archivePath string) (*Dataset, error) {
	destDir, err := os.MkdirTemp("", "dataset-*")
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	fsys, err := archives.FileSystem(ctx, archivePath, nil)
	if err != nil {
		os.RemoveAll(destDir)
		return nil, err
	}

	ds := &Dataset{Dir: destDir}
	err = fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || shouldIgnoreFile(filepath.Base(path)) {
			return nil
		}
		if !strings.EqualFold(filepath.Ext(path), ".csv") {
			return nil
		}

		reader, err := fsys.Open(path)
		if err != nil {
			return err
		}
		defer reader.Close()

		destPath := filepath.Join(destDir, filepath.Base(path))
		outFile, err := os.Create(destPath)
		if err != nil {
			return err
		}
		defer outFile.Close()

		if _, err := io.Copy(outFile, reader); err != nil {
			return err
		}

		switch sniffCSVKind(destPath) {
		case kindAircraft:
			if ds.AircraftCSV == "" {
				ds.AircraftCSV = destPath
			}
		case kindDrone:
			if ds.DroneCSV == "" {
				ds.DroneCSV = destPath
			}
		}
		return nil
	})
	if err != nil {
		os.RemoveAll(destDir)
		return nil, err
	}

	if ds.AircraftCSV == "" || ds.DroneCSV == "" {
		os.RemoveAll(destDir)
		return nil, fmt.Errorf("archive must contain one aircraft CSV (icao24 column) and one drone CSV (drone_id column)")
	}
	return ds, nil
}

type csvKind int

const (
	kindUnknown csvKind = iota
	kindAircraft
	kindDrone
)

// sniffCSVKind classifies an extracted CSV by its header line.
func sniffCSVKind(path string) csvKind {
	f, err := os.Open(path)
	if err != nil {
		return kindUnknown
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return kindUnknown
	}
	header := strings.ToLower(scanner.Text())
	switch {
	case strings.Contains(header, "icao24"):
		return kindAircraft
	case strings.Contains(header, "drone_id"):
		return kindDrone
	default:
		return kindUnknown
	}
}

// shouldIgnoreFile filters out system files and hidden files.
func shouldIgnoreFile(filename string) bool {
	if strings.HasPrefix(filename, "._") || strings.HasPrefix(filename, ".") {
		return true
	}
	if filename == "" || strings.HasSuffix(filename, "/") {
		return true
	}
	if strings.ToLower(filename) == "thumbs.db" {
		return true
	}
	return false
}
