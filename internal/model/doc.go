// Package model defines the data structures shared by the pdfredact packages.
//
// This package contains the following main types:
//   - UploadedFile: the document selected for submission
//   - CategoryCounts: redaction category name to occurrence count
//   - RedactionResult: per-page redacted text plus per-page and total stats
//   - Outcome: the tagged result of one submission
//   - MetadataFinding: metadata a document still carries outside its pages
//   - ValidationError, ServiceError, NetworkError: the error taxonomy
//
// Types live here so that session, service, controller and report can share
// them without import cycles. The package depends on no other internal package.
package model
