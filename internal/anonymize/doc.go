// Package anonymize removes personal data from email bodies.
//
// A body passes through five stages, in order:
//
//  1. Normalization - markup and entity removal, whitespace collapsing
//  2. Quote stripping - reply chains and forwarded content are cut off
//  3. Name extraction - addressee names are read from salutations
//  4. Name redaction - those names become [Customer]
//  5. Entity redaction - contact, financial and address data become fixed tokens
//
// Basic usage:
//
//	pipeline := anonymize.New(
//	    anonymize.WithAuthor("Joe", "Newman"),
//	    anonymize.WithMinContentLength(20),
//	)
//	result := pipeline.Run(doc.Emails)
//
// Configuration via ~/.penmark.yaml:
//
//	author:
//	  first_name: Joe
//	  last_name: Newman
//	redaction:
//	  categories:
//	    - contact-email
//	    - phone
package anonymize
