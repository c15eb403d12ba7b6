package worker // import "github.com/openleaf/openleaf/worker"

import (
	"os"

	"go.uber.org/zap"

	"github.com/openleaf/openleaf/config"
	"github.com/openleaf/openleaf/log"
	"github.com/openleaf/openleaf/model"
	"github.com/openleaf/openleaf/store"
	"github.com/openleaf/openleaf/util"
)

const (
	JobTypeBookAnalyze  = "book_analyze"
	JobTypeCoverConvert = "cover_convert"
)

// BookAnalyzePool runs post-upload work off the request path: counting
// pages of the uploaded file and converting covers to webp.
type BookAnalyzePool struct {
	queue chan model.Job
}

func NewAnalyzePool(store *store.Store, size int) *BookAnalyzePool {
	pool := &BookAnalyzePool{
		queue: make(chan model.Job),
	}

	for i := 0; i < size; i++ {
		worker := &BookAnalyzeWorker{id: i, store: store}
		go worker.Run(pool.queue)
	}

	return pool
}

func (p *BookAnalyzePool) GetQueue() chan model.Job {
	return p.queue
}

// Implement WorkPool interface
func (p *BookAnalyzePool) Push(job model.Job) {
	p.queue <- job
}

type BookAnalyzeWorker struct {
	id    int
	store *store.Store
}

func (w *BookAnalyzeWorker) Run(c <-chan model.Job) {
	log.Debug("BookAnalyzeWorker is running", zap.Int("worker_id", w.id))

	for {
		job := <-c

		log.Debug("Job received by worker",
			zap.Int("worker_id", w.id),
			zap.Int("book_id", job.BookID),
			zap.String("type", job.Type))

		if job.ID != 0 {
			if err := w.store.UpdateJobStatus(job.ID, model.JobStatusRunning); err != nil {
				log.Error("Error updating job status", zap.Error(err))
			}
		}

		var err error
		switch job.Type {
		case JobTypeBookAnalyze:
			err = w.analyzeBook(job)
		case JobTypeCoverConvert:
			err = w.convertCover(job)
		default:
			log.Error("Unknown job type", zap.String("type", job.Type))
			continue
		}

		status := model.JobStatusDone
		if err != nil {
			log.Error("Job failed",
				zap.Int("book_id", job.BookID),
				zap.String("type", job.Type),
				zap.Error(err))
			status = model.JobStatusFailed
		}
		if job.ID != 0 {
			if err := w.store.UpdateJobStatus(job.ID, status); err != nil {
				log.Error("Error updating job status", zap.Error(err))
			}
		}
	}
}

func (w *BookAnalyzeWorker) analyzeBook(job model.Job) error {
	pageCount, err := GetPageCount(job.Path)
	if err != nil {
		return err
	}

	if err := w.store.SetBookPageCount(job.BookID, pageCount); err != nil {
		return err
	}

	log.Debug("Book analyzed",
		zap.Int("book_id", job.BookID),
		zap.Int("page_count", pageCount))
	return nil
}

func (w *BookAnalyzeWorker) convertCover(job model.Job) error {
	webpPath := util.ImageToWebp(job.Path, float32(config.Opts.CoverQuality))
	if webpPath == "" {
		// Conversion failed, keep the original image as the cover.
		return w.store.SetBookCover(job.BookID, job.Path)
	}

	if err := w.store.SetBookCover(job.BookID, webpPath); err != nil {
		return err
	}
	if err := os.Remove(job.Path); err != nil {
		log.Warn("Failed to remove original cover", zap.String("path", job.Path), zap.Error(err))
	}
	return nil
}
