package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/vteach/qa-backend/internal/adapter/utils"
)

var audioDirectory string

func InitAudioHandler(audioDir string) {
	audioDirectory = audioDir
}

// GetAudioHandler godoc
// @Summary      Fetch a synthesized answer recording
// @Description  Serves the MP3 file generated for a previous answer.
// @Tags         QA
// @Produce      audio/mpeg
// @Param        file  path      string  true  "Audio file name"
// @Success      200   {file}    binary  "The MP3 recording"
// @Failure      404   {object}  api.ErrorResponse  "Recording not found"
// @Router       /api/audio/responses/{file} [get]
func GetAudioHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request", "remote", r.RemoteAddr)
		return
	}

	fileName := utils.GetChiURLParam(r, "file")

	// reject traversal attempts, only flat uuid.mp3 names are ever issued
	if fileName == "" || fileName != filepath.Base(fileName) || strings.Contains(fileName, "..") {
		WriteErrorResponse(w, http.StatusBadRequest, fileName, "invalid file name")
		return
	}

	filePath := filepath.Join(audioDirectory, fileName)
	if _, err := os.Stat(filePath); err != nil {
		WriteErrorResponse(w, http.StatusNotFound, fileName, "Recording not found")
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	http.ServeFile(w, r, filePath)
}
