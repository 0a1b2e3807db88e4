package io

import (
	"io"
	"os"

	u "github.com/moratsam/ltfountain/util"
)

func CreateFile(filepath string) (*os.File, error) {
	return os.Create(filepath)
}

func OpenFile(filepath string) (*os.File, error) {
	return os.Open(filepath)
}

func FileSize(filepath string) (int64, error) {
	fi, err := os.Stat(filepath)
	if err != nil {
		return 0, u.WrapErr("get stat", err)
	}
	return fi.Size(), nil
}

func ReadFrom(f *os.File, chunk_size int64) ([]byte, error) {
	chunk := make([]byte, chunk_size)
	count, err := f.Read(chunk)
	if err != nil {
		if err == io.EOF {
			return make([]byte, 0), nil
		}
		return nil, u.WrapErr("read", err)
	}
	return chunk[:count], nil
}

// ReadAll reads f to the end and returns its full contents.
func ReadAll(f *os.File) ([]byte, error) {
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, u.WrapErr("read all", err)
	}
	return data, nil
}

func WriteTo(f *os.File, chunk []byte) error {
	_, err := f.Write(chunk)
	return err
}
