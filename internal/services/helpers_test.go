package services

import repo "github.com/plumablog/backend/internal/repository"

func pageOf(limit, offset int) repo.Page {
	return repo.Page{Limit: limit, Offset: offset}
}
