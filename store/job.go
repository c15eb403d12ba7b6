package store

import (
	"github.com/openleaf/openleaf/model"
)

func (s *Store) AddJob(job model.Job) (*model.Job, error) {
	stmt := `
    INSERT INTO jobs (user_id, book_id, path, type, status) VALUES (?, ?, ?, ?, ?)
    RETURNING id, user_id, book_id, path, type, status
    `

	s.dbLock.Lock()
	defer s.dbLock.Unlock()
	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}

	var j model.Job
	if err := tx.QueryRow(stmt, job.UserID, job.BookID, job.Path, job.Type, job.Status).Scan(
		&j.ID, &j.UserID, &j.BookID, &j.Path, &j.Type, &j.Status,
	); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &j, nil
}

func (s *Store) UpdateJobStatus(jobID int, status string) error {
	s.dbLock.Lock()
	defer s.dbLock.Unlock()

	_, err := s.db.Exec("UPDATE jobs SET status = ? WHERE id = ?", status, jobID)
	return err
}

// ListPendingJobs returns jobs that never ran, oldest first. Used to
// resume analysis work after a restart.
func (s *Store) ListPendingJobs() ([]*model.Job, error) {
	rows, err := s.db.Query("SELECT id, user_id, book_id, path, type, status FROM jobs WHERE status = ? ORDER BY id", model.JobStatusPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]*model.Job, 0)
	for rows.Next() {
		var j model.Job
		if err := rows.Scan(&j.ID, &j.UserID, &j.BookID, &j.Path, &j.Type, &j.Status); err != nil {
			return nil, err
		}
		list = append(list, &j)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}
