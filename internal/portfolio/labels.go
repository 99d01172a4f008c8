// Folio - Portfolio Content API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package portfolio

import (
	"fmt"

	"github.com/tomtom215/folio/internal/models"
)

// Property names as they appear in the Notion databases.
const (
	propLanguage = "Language"

	propName                 = "Nom"
	propDescription          = "Description"
	propLongDescription      = "Description détaillée"
	propWhatILearned         = "Ce que j'ai appris"
	propProblemsAndSolutions = "Problèmes et solutions"
	propGithub               = "Github"
	propDemo                 = "Démonstration"
	propDisplayed            = "Affiché"
	propTechnologies         = "Technologies"
	propPartners             = "Réalisé avec"
	propStatus               = "Statut"
	propProjectType          = "Type de projet"
	propOrder                = "Ordre"
	propIllustration         = "Illustration"
	propScreenshots          = "Captures d'écran"

	propUsername = "Nom d'utilisateur"

	propSchool = "Etablissement"
	propStart  = "Début"
	propEnd    = "Fin"

	propCompany    = "Entreprise"
	propJobTitle   = "Intitulé"
	propCompanyURL = "Site web"
)

var statusLabels = map[string]models.Status{
	"En cours":                  models.StatusInProgress,
	"Terminé":                   models.StatusCompleted,
	"En pause":                  models.StatusPaused,
	"Abandonné":                 models.StatusCancelled,
	"Partiellement fonctionnel": models.StatusWaitingMaj,
}

// ParseStatus maps a localized status label. Any label outside the known set
// is an error: it means the upstream schema changed.
func ParseStatus(label string) (models.Status, error) {
	if s, ok := statusLabels[label]; ok {
		return s, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStatus, label)
}

// ParseProjectType maps "Personnel" to personal and everything else to school.
func ParseProjectType(label string) models.ProjectType {
	if label == "Personnel" {
		return models.ProjectTypePersonal
	}
	return models.ProjectTypeSchool
}
