package common

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/multiversx/mx-chain-core-go/core"
	logger "github.com/multiversx/mx-chain-logger-go"
	"github.com/pelletier/go-toml"
)

const (
	contractBundleSuffix = ".mxsc.json"
	tempFilePattern      = ".tmp-*"
	filePermissions      = 0644
)

var log = logger.GetOrCreate("common")

type contractBundle struct {
	Code string `json:"code"`
}

// FileExists returns true if the path exists and is not a directory
func FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}

		return false, err
	}

	return !info.IsDir(), nil
}

// LoadTomlFile decodes the toml file found at path into dest
func LoadTomlFile(dest interface{}, path string) error {
	if len(path) == 0 {
		return ErrEmptyFilePath
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}

	defer func() {
		errClose := f.Close()
		if errClose != nil {
			log.Warn("cannot close file", "path", path, "error", errClose.Error())
		}
	}()

	return toml.NewDecoder(f).Decode(dest)
}

// SaveTomlFileAtomically encodes src as toml and replaces the file found at path.
// The content is written in a temporary file of the same directory, then renamed over the destination.
func SaveTomlFileAtomically(src interface{}, path string) error {
	if len(path) == 0 {
		return ErrEmptyFilePath
	}

	buff, err := toml.Marshal(src)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmpFile, err := os.CreateTemp(dir, filepath.Base(path)+tempFilePattern)
	if err != nil {
		return err
	}
	tmpName := tmpFile.Name()

	_, err = tmpFile.Write(buff)
	if err != nil {
		_ = tmpFile.Close()
		_ = os.Remove(tmpName)
		return err
	}

	err = tmpFile.Close()
	if err != nil {
		_ = os.Remove(tmpName)
		return err
	}

	err = os.Chmod(tmpName, filePermissions)
	if err != nil {
		_ = os.Remove(tmpName)
		return err
	}

	err = os.Rename(tmpName, path)
	if err != nil {
		_ = os.Remove(tmpName)
		return err
	}

	return nil
}

// LoadContractCode reads the contract bytecode either from a raw .wasm file or from a .mxsc.json bundle
func LoadContractCode(path string) ([]byte, error) {
	if len(path) == 0 {
		return nil, ErrEmptyFilePath
	}

	if strings.HasSuffix(path, contractBundleSuffix) {
		return loadContractCodeFromBundle(path)
	}

	code, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(code) == 0 {
		return nil, fmt.Errorf("%w in file %s", ErrEmptyContractCode, path)
	}

	return code, nil
}

func loadContractCodeFromBundle(path string) ([]byte, error) {
	bundle := &contractBundle{}
	err := core.LoadJsonFile(bundle, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidContractBundle, err.Error())
	}

	code, err := hex.DecodeString(bundle.Code)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidContractBundle, err.Error())
	}
	if len(code) == 0 {
		return nil, fmt.Errorf("%w in bundle %s", ErrEmptyContractCode, path)
	}

	log.Debug("loaded contract bundle", "path", path, "code size", len(code))

	return code, nil
}
