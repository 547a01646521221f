// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"path/filepath"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/fsnotify/fsnotify"
)

// editors often write a file in several steps
const settleDelay = 2 * time.Second

// configWatcher - re-reads the configuration file after it changes
// and passes the new settings to reload
type configWatcher struct {
	log      *logger.L
	watcher  *fsnotify.Watcher
	filePath string
	delay    time.Duration
	reload   func(*Configuration)
}

func newConfigWatcher(fileName string, reload func(*Configuration)) (*configWatcher, error) {
	filePath, err := filepath.Abs(filepath.Clean(fileName))
	if nil != err {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if nil != err {
		return nil, err
	}

	// watch the directory so that editors replacing the file are seen
	if err := watcher.Add(filepath.Dir(filePath)); nil != err {
		_ = watcher.Close()
		return nil, err
	}

	return &configWatcher{
		log:      logger.New("watcher"),
		watcher:  watcher,
		filePath: filePath,
		delay:    settleDelay,
		reload:   reload,
	}, nil
}

func (w *configWatcher) Run(args interface{}, shutdown <-chan struct{}) {
	w.log.Infof("watching: %q", w.filePath)

	var settle <-chan time.Time

loop:
	for {
		select {
		case <-shutdown:
			break loop

		case event, ok := <-w.watcher.Events:
			if !ok {
				break loop
			}
			if filepath.Clean(event.Name) != w.filePath {
				continue loop
			}
			w.log.Debugf("file event: %v", event)
			if eventIsChange(event) {
				settle = time.After(w.delay)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				break loop
			}
			w.log.Errorf("watcher error: %s", err)

		case <-settle:
			settle = nil
			options, err := getConfiguration(w.filePath)
			if nil != err {
				w.log.Errorf("failed to read configuration from: %q  error: %s", w.filePath, err)
				continue loop
			}
			w.log.Info("configuration changed")
			w.reload(options)
		}
	}

	_ = w.watcher.Close()
	w.log.Info("shutting down…")
	w.log.Flush()
}

func eventIsChange(event fsnotify.Event) bool {
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Chmod) != 0
}
