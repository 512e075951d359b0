package diarize

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/nguyentantai21042004/speaker-spotlight/internal/segment"
)

type httpSegment struct {
	Start   float64         `json:"start"`
	End     float64         `json:"end"`
	Speaker json.RawMessage `json:"speaker"`
}

type httpResponse struct {
	Segments []httpSegment `json:"segments"`
}

// Diarize uploads the wav as multipart field "file" to <url>/diarize.
func (d *implHTTP) Diarize(ctx context.Context, audioPath string, expected int) ([]segment.Raw, error) {
	var b bytes.Buffer
	w := multipart.NewWriter(&b)

	fw, err := w.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return nil, err
	}
	fd, err := os.Open(audioPath)
	if err != nil {
		return nil, fmt.Errorf("open audio: %w", err)
	}
	defer fd.Close()

	if _, err = io.Copy(fw, fd); err != nil {
		return nil, err
	}
	if expected > 0 {
		if err := w.WriteField("num_speakers", strconv.Itoa(expected)); err != nil {
			return nil, err
		}
	}
	if err = w.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url+"/diarize", &b)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	d.logger.Info(ctx, "Posting audio to diarization service: %s", d.url)
	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("diarization request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("diarization %s: %s", resp.Status, string(body))
	}

	var out httpResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("diarization decode: %w", err)
	}

	raws := make([]segment.Raw, 0, len(out.Segments))
	for i, s := range out.Segments {
		label, err := speakerLabel(s.Speaker)
		if err != nil {
			return nil, fmt.Errorf("segment %d: %w", i, err)
		}
		raws = append(raws, segment.Raw{Start: s.Start, End: s.End, Label: label})
	}
	return raws, nil
}

// speakerLabel accepts either a JSON string or a JSON number.
func speakerLabel(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", fmt.Errorf("%w: missing speaker label", segment.ErrInvalidSegment)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String(), nil
	}
	return "", fmt.Errorf("%w: speaker label %s", segment.ErrInvalidSegment, string(raw))
}
