package analysis_test

import (
	"errors"
	"io"
	"io/fs"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"

	"github.com/agbru/loganalyzer/internal/analysis"
	"github.com/agbru/loganalyzer/internal/analysis/mocks"
	apperrors "github.com/agbru/loganalyzer/internal/errors"
)

func TestScanner_WithMockSource(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	src := mocks.NewMockSource(ctrl)
	src.EXPECT().Name().Return("mock.log").AnyTimes()
	src.EXPECT().Open().Return(io.NopCloser(strings.NewReader("WARN a\nWARN b\nERROR c\n")), nil).Times(1)

	obs := mocks.NewMockScanObserver(ctrl)
	obs.EXPECT().FileScanned(gomock.Any()).Do(func(e analysis.ScanEvent) {
		if e.File != "mock.log" || e.Lines != 3 || e.Matches != 3 {
			t.Errorf("unexpected event %+v", e)
		}
	}).Times(1)

	scanner := analysis.NewScanner(analysis.WithObserver(obs))
	counts, err := scanner.Scan(src, analysis.MustKeywords("WARN", "ERROR"), analysis.Unit{Pass: analysis.PassSequential})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if counts.Get("WARN") != 2 || counts.Get("ERROR") != 1 {
		t.Errorf("unexpected counts %s", counts)
	}
}

func TestScanner_MockOpenFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	src := mocks.NewMockSource(ctrl)
	src.EXPECT().Name().Return("denied.log").AnyTimes()
	src.EXPECT().Open().Return(nil, fs.ErrPermission)

	obs := mocks.NewMockScanObserver(ctrl)
	obs.EXPECT().FileScanned(gomock.Any()).Do(func(e analysis.ScanEvent) {
		if !errors.Is(e.Err, fs.ErrPermission) {
			t.Errorf("event should carry the open error, got %v", e.Err)
		}
	})

	_, err := analysis.NewScanner(analysis.WithObserver(obs)).Scan(src, analysis.MustKeywords("ERROR"), analysis.Unit{Pass: analysis.PassConcurrent, Worker: 1})
	var se *apperrors.ScanError
	if !errors.As(err, &se) || se.Op != "open" {
		t.Fatalf("expected open ScanError, got %v", err)
	}
	if !errors.Is(err, fs.ErrPermission) {
		t.Error("ScanError should wrap the open error")
	}
}

func TestObservers_FanOut(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	first := mocks.NewMockScanObserver(ctrl)
	second := mocks.NewMockScanObserver(ctrl)
	event := analysis.ScanEvent{File: "a.log"}
	gomock.InOrder(
		first.EXPECT().FileScanned(event),
		second.EXPECT().FileScanned(event),
	)

	analysis.Observers{first, nil, second}.FileScanned(event)
}
