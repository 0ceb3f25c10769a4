package dto

type GistRequest struct {
	Content  string `json:"content"`
	RepoName string `json:"repoName"`
}

type GistResponse struct {
	URL string `json:"url"`
}
