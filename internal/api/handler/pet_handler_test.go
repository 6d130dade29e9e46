package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"adoptme/internal/app/service"
	"adoptme/internal/domain/model"
	"adoptme/internal/platform/config"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPetServer(t *testing.T) (*httptest.Server, *fakePetRepo) {
	t.Helper()
	pets := newFakePetRepo()
	petService := service.NewPetService(pets)

	r := chi.NewRouter()
	r.Route("/api/pets", NewPetHandler(petService).RegisterRoutes)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, pets
}

func tempImageDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	previous := config.AppConfig.PetImageDir
	config.AppConfig.PetImageDir = dir
	t.Cleanup(func() { config.AppConfig.PetImageDir = previous })
	return dir
}

// petForm builds a multipart body with the given fields plus an image
// part named filename; pass an empty filename to omit the image.
func petForm(t *testing.T, fields map[string]string, filename string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	if filename != "" {
		part, err := writer.CreateFormFile("image", filename)
		require.NoError(t, err)
		_, err = part.Write([]byte("png-bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestCreatePetWithImageEndpoint(t *testing.T) {
	dir := tempImageDir(t)
	srv, pets := newPetServer(t)

	body, contentType := petForm(t, map[string]string{
		"name":      "Luna",
		"specie":    "cat",
		"birthDate": "2021-06-15",
	}, "photo.png")

	resp, err := http.Post(srv.URL+"/api/pets/withimage", contentType, body)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	env := decodeEnvelope(t, resp.Body)

	var pet model.Pet
	require.NoError(t, json.Unmarshal(env.Payload, &pet))
	assert.False(t, pet.Adopted)
	assert.Contains(t, pet.Image, "luna-")
	assert.Len(t, pets.pets, 1)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasSuffix(entries[0].Name(), ".png"))
}

func TestCreatePetWithImageMissingFile(t *testing.T) {
	tempImageDir(t)
	srv, pets := newPetServer(t)

	body, contentType := petForm(t, map[string]string{
		"name":      "Luna",
		"specie":    "cat",
		"birthDate": "2021-06-15",
	}, "")

	resp, err := http.Post(srv.URL+"/api/pets/withimage", contentType, body)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	env := decodeEnvelope(t, resp.Body)
	assert.Equal(t, "error", env.Status)
	assert.Empty(t, pets.pets)
}

func TestCreatePetWithImageBadDateKeepsDirClean(t *testing.T) {
	dir := tempImageDir(t)
	srv, pets := newPetServer(t)

	body, contentType := petForm(t, map[string]string{
		"name":      "Luna",
		"specie":    "cat",
		"birthDate": "15/06/2021",
	}, "photo.png")

	resp, err := http.Post(srv.URL+"/api/pets/withimage", contentType, body)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, pets.pets)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "a rejected upload must not leave files behind")
}

func TestCreatePetInvalidJSON(t *testing.T) {
	srv, pets := newPetServer(t)

	resp, err := http.Post(srv.URL+"/api/pets", "application/json", strings.NewReader("{not json"))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	env := decodeEnvelope(t, resp.Body)
	assert.Equal(t, "error", env.Status)
	assert.Contains(t, env.Error, "invalid request payload")
	assert.Empty(t, pets.pets)
}
