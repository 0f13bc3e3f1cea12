package handlers

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"
	"github.com/nfnt/resize"

	"github.com/myrayzsiza/cse-340/internal/models"
	"github.com/myrayzsiza/cse-340/internal/store"
	"github.com/myrayzsiza/cse-340/internal/validate"
)

type InventoryHandler struct {
	Store        *store.Store
	Templates    *TemplateCache
	SessionStore *sessions.CookieStore
	UploadDir    string // e.g. "static/uploads"
}

func (h *InventoryHandler) ByClassification(w http.ResponseWriter, r *http.Request) {
	classificationID, err := strconv.Atoi(r.PathValue("classificationId"))
	if err != nil {
		renderNotFound(w, h.Templates, navClassifications(h.Store))
		return
	}

	classification, err := h.Store.GetClassificationByID(classificationID)
	if err != nil {
		slog.Error("Failed to load classification", "error", err)
		renderServerError(w, h.Templates, navClassifications(h.Store))
		return
	}
	if classification == nil {
		renderNotFound(w, h.Templates, navClassifications(h.Store))
		return
	}

	vehicles, err := h.Store.GetVehiclesByClassification(classificationID)
	if err != nil {
		slog.Error("Failed to load vehicles", "error", err)
		renderServerError(w, h.Templates, navClassifications(h.Store))
		return
	}

	render(w, h.Templates, "classification.html", map[string]interface{}{
		"Title":          classification.Name + " Vehicles",
		"Nav":            navClassifications(h.Store),
		"Classification": classification,
		"Vehicles":       vehicles,
	})
}

func (h *InventoryHandler) Detail(w http.ResponseWriter, r *http.Request) {
	invID, err := strconv.Atoi(r.PathValue("invId"))
	if err != nil {
		renderNotFound(w, h.Templates, navClassifications(h.Store))
		return
	}

	vehicle, err := h.Store.GetVehicleByID(invID)
	if err != nil {
		slog.Error("Failed to load vehicle", "error", err)
		renderServerError(w, h.Templates, navClassifications(h.Store))
		return
	}
	if vehicle == nil {
		renderNotFound(w, h.Templates, navClassifications(h.Store))
		return
	}

	reviews, err := h.Store.GetApprovedReviews(invID)
	if err != nil {
		slog.Error("Failed to load reviews", "error", err)
		renderServerError(w, h.Templates, navClassifications(h.Store))
		return
	}
	avg, total, err := h.Store.GetRatingSummary(invID)
	if err != nil {
		slog.Error("Failed to load rating summary", "error", err)
		renderServerError(w, h.Templates, navClassifications(h.Store))
		return
	}

	session, _ := h.SessionStore.Get(r, SessionName)
	data := map[string]interface{}{
		"Title":         fmt.Sprintf("%d %s %s", vehicle.Year, vehicle.Make, vehicle.Model),
		"Nav":           navClassifications(h.Store),
		"Vehicle":       vehicle,
		"Reviews":       reviews,
		"AverageRating": avg,
		"TotalReviews":  total,
		"CsrfField":     csrf.TemplateField(r),
		"Flashes":       GetFlash(session),
	}
	session.Save(r, w)
	render(w, h.Templates, "vehicle_detail.html", data)
}

func (h *InventoryHandler) AddClassificationForm(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, SessionName)
	data := map[string]interface{}{
		"Title":     "Add Classification",
		"Nav":       navClassifications(h.Store),
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	render(w, h.Templates, "add_classification.html", data)
}

func (h *InventoryHandler) AddClassification(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.FormValue("classification_name"))

	if name == "" || !validate.IsAlphanumeric(name) {
		renderStatus(w, h.Templates, "add_classification.html", http.StatusBadRequest, map[string]interface{}{
			"Title":     "Add Classification",
			"Nav":       navClassifications(h.Store),
			"CsrfField": csrf.TemplateField(r),
			"Errors":    []string{"Classification name is required and may not contain spaces or special characters."},
			"Name":      name,
		})
		return
	}

	if _, err := h.Store.AddClassification(name); err != nil {
		slog.Error("Failed to add classification", "error", err)
		renderStatus(w, h.Templates, "add_classification.html", http.StatusBadRequest, map[string]interface{}{
			"Title":     "Add Classification",
			"Nav":       navClassifications(h.Store),
			"CsrfField": csrf.TemplateField(r),
			"Errors":    []string{"Could not add classification. It may already exist."},
			"Name":      name,
		})
		return
	}

	session, _ := h.SessionStore.Get(r, SessionName)
	session.AddFlash(FlashMessage{Type: "success", Message: "Classification added."})
	session.Save(r, w)
	http.Redirect(w, r, "/inv/add-inventory", http.StatusSeeOther)
}

func (h *InventoryHandler) AddVehicleForm(w http.ResponseWriter, r *http.Request) {
	classifications := navClassifications(h.Store)
	session, _ := h.SessionStore.Get(r, SessionName)
	data := map[string]interface{}{
		"Title":           "Add Vehicle",
		"Nav":             classifications,
		"Classifications": classifications,
		"CsrfField":       csrf.TemplateField(r),
		"Flashes":         GetFlash(session),
	}
	session.Save(r, w)
	render(w, h.Templates, "add_inventory.html", data)
}

func (h *InventoryHandler) AddVehicle(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil { // 10MB
		h.vehicleFormError(w, r, []string{"Upload too large. Max 10MB."}, nil)
		return
	}

	v, errs := h.vehicleFromForm(r)
	if len(errs) > 0 {
		h.vehicleFormError(w, r, errs, v)
		return
	}

	// Image is optional; the schema defaults to the placeholder art.
	file, header, fileErr := r.FormFile("image")
	if fileErr == nil {
		defer file.Close()
		imagePath, thumbPath, err := h.saveVehicleImage(file, header)
		if err != nil {
			h.vehicleFormError(w, r, []string{err.Error()}, v)
			return
		}
		v.Image = imagePath
		v.Thumbnail = thumbPath
	} else {
		v.Image = "/images/vehicles/no-image.png"
		v.Thumbnail = "/images/vehicles/no-image-tn.png"
	}

	if _, err := h.Store.AddVehicle(v); err != nil {
		slog.Error("Failed to add vehicle", "error", err)
		h.vehicleFormError(w, r, []string{"Error saving vehicle to database."}, v)
		return
	}

	session, _ := h.SessionStore.Get(r, SessionName)
	session.AddFlash(FlashMessage{Type: "success", Message: "Vehicle added successfully!"})
	session.Save(r, w)
	http.Redirect(w, r, "/admin/dash", http.StatusSeeOther)
}

func (h *InventoryHandler) EditVehicleForm(w http.ResponseWriter, r *http.Request) {
	invID, err := strconv.Atoi(r.PathValue("invId"))
	if err != nil {
		renderNotFound(w, h.Templates, navClassifications(h.Store))
		return
	}
	vehicle, err := h.Store.GetVehicleByID(invID)
	if err != nil {
		slog.Error("Failed to load vehicle", "error", err)
		renderServerError(w, h.Templates, navClassifications(h.Store))
		return
	}
	if vehicle == nil {
		renderNotFound(w, h.Templates, navClassifications(h.Store))
		return
	}
	classifications := navClassifications(h.Store)
	session, _ := h.SessionStore.Get(r, SessionName)
	data := map[string]interface{}{
		"Title":           "Edit Vehicle",
		"Nav":             classifications,
		"Classifications": classifications,
		"Vehicle":         vehicle,
		"CsrfField":       csrf.TemplateField(r),
		"Flashes":         GetFlash(session),
	}
	session.Save(r, w)
	render(w, h.Templates, "edit_inventory.html", data)
}

func (h *InventoryHandler) UpdateVehicle(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		h.vehicleFormError(w, r, []string{"Upload too large. Max 10MB."}, nil)
		return
	}

	invID, err := strconv.Atoi(r.FormValue("inv_id"))
	if err != nil {
		renderNotFound(w, h.Templates, navClassifications(h.Store))
		return
	}
	existing, err := h.Store.GetVehicleByID(invID)
	if err != nil || existing == nil {
		renderNotFound(w, h.Templates, navClassifications(h.Store))
		return
	}

	v, errs := h.vehicleFromForm(r)
	if len(errs) > 0 {
		h.vehicleFormError(w, r, errs, v)
		return
	}
	v.ID = invID

	if err := h.Store.UpdateVehicle(v); err != nil {
		slog.Error("Failed to update vehicle", "error", err)
		renderServerError(w, h.Templates, navClassifications(h.Store))
		return
	}

	if file, header, fileErr := r.FormFile("image"); fileErr == nil {
		defer file.Close()
		imagePath, thumbPath, err := h.saveVehicleImage(file, header)
		if err == nil {
			if err := h.Store.UpdateVehicleImages(invID, imagePath, thumbPath); err != nil {
				slog.Error("Failed to update vehicle images", "error", err)
			}
		}
	}

	session, _ := h.SessionStore.Get(r, SessionName)
	session.AddFlash(FlashMessage{Type: "success", Message: "Vehicle updated."})
	session.Save(r, w)
	http.Redirect(w, r, "/inv/detail/"+strconv.Itoa(invID), http.StatusSeeOther)
}

func (h *InventoryHandler) DeleteVehicle(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, SessionName)
	defer session.Save(r, w)

	invID, err := strconv.Atoi(r.FormValue("inv_id"))
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Invalid vehicle ID."})
		http.Redirect(w, r, "/admin/dash", http.StatusSeeOther)
		return
	}
	if err := h.Store.DeleteVehicle(invID); err != nil {
		slog.Error("Failed to delete vehicle", "error", err)
		session.AddFlash(FlashMessage{Type: "error", Message: "Error deleting vehicle."})
		http.Redirect(w, r, "/admin/dash", http.StatusSeeOther)
		return
	}
	session.AddFlash(FlashMessage{Type: "success", Message: "Vehicle deleted."})
	http.Redirect(w, r, "/admin/dash", http.StatusSeeOther)
}

// vehicleFromForm validates the shared add/edit fields.
func (h *InventoryHandler) vehicleFromForm(r *http.Request) (*models.Vehicle, []string) {
	v := &models.Vehicle{
		Make:        strings.TrimSpace(r.FormValue("inv_make")),
		Model:       strings.TrimSpace(r.FormValue("inv_model")),
		Description: strings.TrimSpace(r.FormValue("inv_description")),
		Color:       strings.TrimSpace(r.FormValue("inv_color")),
	}

	var errs []string
	if v.Make == "" {
		errs = append(errs, "Make is required.")
	}
	if v.Model == "" {
		errs = append(errs, "Model is required.")
	}

	year, err := strconv.Atoi(r.FormValue("inv_year"))
	if err != nil || !validate.VehicleYearValid(year) {
		errs = append(errs, "A valid model year is required.")
	}
	v.Year = year

	price, err := strconv.ParseFloat(r.FormValue("inv_price"), 64)
	if err != nil || price <= 0 {
		errs = append(errs, "Price must be a positive number.")
	}
	v.Price = price

	if milesStr := r.FormValue("inv_miles"); milesStr != "" {
		miles, err := strconv.Atoi(milesStr)
		if err != nil || miles < 0 {
			errs = append(errs, "Mileage must be zero or more.")
		}
		v.Miles = miles
	}

	classificationID, err := strconv.Atoi(r.FormValue("classification_id"))
	if err != nil {
		errs = append(errs, "Classification is required.")
	} else {
		classification, cerr := h.Store.GetClassificationByID(classificationID)
		if cerr != nil || classification == nil {
			errs = append(errs, "Classification is invalid.")
		}
	}
	v.ClassificationID = classificationID

	return v, errs
}

func (h *InventoryHandler) vehicleFormError(w http.ResponseWriter, r *http.Request, errs []string, v *models.Vehicle) {
	classifications := navClassifications(h.Store)
	data := map[string]interface{}{
		"Title":           "Add Vehicle",
		"Nav":             classifications,
		"Classifications": classifications,
		"CsrfField":       csrf.TemplateField(r),
		"Errors":          errs,
	}
	if v != nil {
		data["Vehicle"] = v
	}
	renderStatus(w, h.Templates, "add_inventory.html", http.StatusBadRequest, data)
}

// saveVehicleImage decodes the upload, writes an 800px-wide JPEG and a
// 300px thumbnail under the upload dir, and returns their public paths.
func (h *InventoryHandler) saveVehicleImage(file multipart.File, header *multipart.FileHeader) (string, string, error) {
	var img image.Image
	var err error
	switch strings.ToLower(filepath.Ext(header.Filename)) {
	case ".png":
		img, err = png.Decode(file)
	case ".jpg", ".jpeg":
		img, err = jpeg.Decode(file)
	default:
		return "", "", fmt.Errorf("unsupported image format; only PNG, JPG, JPEG are allowed")
	}
	if err != nil {
		return "", "", fmt.Errorf("failed to decode image")
	}

	name := uuid.New().String()
	full := resize.Resize(800, 0, img, resize.Lanczos3)
	thumb := resize.Resize(300, 0, img, resize.Lanczos3)

	fullName := name + ".jpg"
	thumbName := name + "-tn.jpg"

	for fileName, im := range map[string]image.Image{fullName: full, thumbName: thumb} {
		out, err := os.Create(filepath.Join(h.UploadDir, fileName))
		if err != nil {
			return "", "", fmt.Errorf("error saving image file")
		}
		err = jpeg.Encode(out, im, &jpeg.Options{Quality: 80})
		out.Close()
		if err != nil {
			return "", "", fmt.Errorf("error encoding image")
		}
	}

	return "/static/uploads/" + fullName, "/static/uploads/" + thumbName, nil
}
