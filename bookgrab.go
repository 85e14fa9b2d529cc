// Package bookgrab captures the pages of a browser-rendered book viewer.
// It samples the viewer's virtual-scroll list as it renders, numbers each
// newly seen page image, and hands the image to the browser's own download
// mechanism. Batch utilities then normalize the downloaded files and bundle
// them into a PDF.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., rod/, sqlite/, pdfcpu/).
package bookgrab
