// Package output renders run progress and results on the terminal.
//
// The Reporter is an orchestrator.Observer: it prints each document as it is
// processed, in sections mirroring the run:
//
//	project/tools/install.json
//	  Dependencies check
//	    ✓ git
//	  Pre-scripts
//	    $ make build
//	  Installation
//	    • bin.tools -> ~/bin
//	        ✓ ~/bin/foo => /src/tools/foo.sh
//	  Post-scripts
//	    Nothing done
//
// Text is written with [tag]...[/tag] markup that a style.MarkupParser turns
// into lipgloss styles, or plain text when color is off. The final summary
// and the dependency report are text/template files under templates/.
package output
